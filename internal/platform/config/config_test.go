// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://libris@localhost:5432/libris")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/run/secrets/jwt.pub")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 10*time.Second, cfg.MetadataTimeout)
	assert.Equal(t, int64(1000), cfg.MetadataDailyQuota)
	assert.Empty(t, cfg.MigrationPath)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Equal(t, []string{"libris.app"}, cfg.OriginSuffixes())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("METADATA_TIMEOUT", "2500ms")
	t.Setenv("METADATA_DAILY_QUOTA", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "libris.app, , admin.libris.app")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2500*time.Millisecond, cfg.MetadataTimeout)
	assert.Zero(t, cfg.MetadataDailyQuota)
	assert.Equal(t, []string{"libris.app", "admin.libris.app"}, cfg.OriginSuffixes())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("empty_required", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DATABASE_URL", "")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("non_positive_timeout", func(t *testing.T) {
		setRequired(t)
		t.Setenv("METADATA_TIMEOUT", "0s")
		_, err := config.Load()
		assert.ErrorContains(t, err, "METADATA_TIMEOUT")
	})
}
