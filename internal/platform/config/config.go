// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, metadata client) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Libris API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"libris-api"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath overrides the migrations compiled into the binary.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Store (Redis), used for readiness and the shared metadata quota.
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Identity is issued elsewhere; the catalog only verifies tokens.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`

	// Metadata source (Google Books)
	GoogleBooksURL     string        `env:"GOOGLE_BOOKS_URL"     envDefault:"https://www.googleapis.com/books/v1"`
	GoogleBooksAPIKey  string        `env:"GOOGLE_BOOKS_API_KEY"`
	MetadataTimeout    time.Duration `env:"METADATA_TIMEOUT"     envDefault:"10s"`
	MetadataRPS        float64       `env:"METADATA_RPS"         envDefault:"2"`
	MetadataBurst      int           `env:"METADATA_BURST"       envDefault:"4"`
	MetadataDailyQuota int64         `env:"METADATA_DAILY_QUOTA" envDefault:"1000"`

	// Tracing. An empty endpoint keeps the no-op provider.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Cross-Origin Resource Sharing, comma separated origin suffixes.
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"libris.app"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.MetadataTimeout <= 0 {
		return nil, fmt.Errorf("config: METADATA_TIMEOUT must be positive, got %s", cfg.MetadataTimeout)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffixes splits AllowedOrigins into trimmed, non-empty entries.
func (c *Config) OriginSuffixes() []string {
	var suffixes []string
	for _, part := range strings.Split(c.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			suffixes = append(suffixes, trimmed)
		}
	}
	return suffixes
}
