// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/core/favorite"
	"github.com/taibuivan/libris/internal/core/volume"
	"github.com/taibuivan/libris/internal/platform/postgres/pgtest"
	"github.com/taibuivan/libris/pkg/pointer"
)

// newPostgresFixture stores volumeCount volumes and returns the service on the
// real favorite and volume stores.
func newPostgresFixture(t *testing.T, volumeCount int) (*favorite.Service, *favorite.PostgresRepository) {
	t.Helper()

	pool := pgtest.Open(t)
	volumes := volume.NewPostgresRepository(pool)

	now := time.Now().UTC()
	for n := 1; n <= volumeCount; n++ {
		require.NoError(t, volumes.Create(context.Background(), &volume.Volume{
			ID:        volumeID(n),
			Title:     fmt.Sprintf("Volume %d", n),
			ISBN13:    pointer.To(fmt.Sprintf("978000000%04d", n)),
			CreatedAt: now,
			UpdatedAt: now,
		}))
	}

	repo := favorite.NewPostgresRepository(pool)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return favorite.NewService(repo, volumes, logger), repo
}

/*
TestPostgresRepository_Edges covers the idempotent add and remove on the
(user, volume) primary key.
*/
func TestPostgresRepository_Edges(t *testing.T) {
	_, repo := newPostgresFixture(t, 2)
	ctx := context.Background()

	added, err := repo.Add(ctx, "ron", volumeID(1))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Add(ctx, "ron", volumeID(1))
	require.NoError(t, err)
	assert.False(t, added)

	contains, err := repo.Contains(ctx, "ron", volumeID(1))
	require.NoError(t, err)
	assert.True(t, contains)

	contains, err = repo.Contains(ctx, "hermione", volumeID(1))
	require.NoError(t, err)
	assert.False(t, contains)

	removed, err := repo.Remove(ctx, "ron", volumeID(1))
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, "ron", volumeID(1))
	require.NoError(t, err)
	assert.False(t, removed)

	ids, err := repo.ListVolumeIDs(ctx, "ron")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestPostgresRepository_ListMostRecentFirst(t *testing.T) {
	_, repo := newPostgresFixture(t, 3)
	ctx := context.Background()

	for _, n := range []int{2, 3, 1} {
		_, err := repo.Add(ctx, "ron", volumeID(n))
		require.NoError(t, err)
	}

	ids, err := repo.ListVolumeIDs(ctx, "ron")
	require.NoError(t, err)
	assert.Equal(t, []string{volumeID(1), volumeID(3), volumeID(2)}, ids)
}

/*
TestPostgresRepository_Top checks the ranking query itself: counts descend,
equal counts come back by volume ID whatever the insertion order, and volumes
nobody favorited are absent.
*/
func TestPostgresRepository_Top(t *testing.T) {
	service, repo := newPostgresFixture(t, 8)
	ctx := context.Background()

	// Volume 5 is favorited before volume 2 so insertion order and ID order disagree.
	edges := []struct {
		user   string
		volume int
	}{
		{"ron", 7}, {"ron", 5}, {"hermione", 5}, {"ron", 3},
		{"hermione", 3}, {"harry", 3}, {"ron", 2}, {"harry", 2},
	}
	for _, edge := range edges {
		_, err := repo.Add(ctx, edge.user, volumeID(edge.volume))
		require.NoError(t, err)
	}

	rankings, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []favorite.Ranking{
		{VolumeID: volumeID(3), Count: 3},
		{VolumeID: volumeID(2), Count: 2},
		{VolumeID: volumeID(5), Count: 2},
		{VolumeID: volumeID(7), Count: 1},
	}, rankings)

	top, err := service.Top(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{volumeID(3), volumeID(2)}, ids(top))
	assert.Equal(t, 3, top[0].FavoriteCount)
	assert.Equal(t, "Volume 3", top[0].Title)
}
