// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/core/reference"
	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/internal/platform/postgres/pgtest"
	"github.com/taibuivan/libris/pkg/fold"
)

func TestPostgresRepository_CreateAndFind(t *testing.T) {
	repo := reference.NewPostgresRepository(pgtest.Open(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, reference.KindAuthor, "J.K. Rowling", fold.Key("J.K. Rowling"))
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, reference.KindAuthor, created.Kind)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByKey(ctx, reference.KindAuthor, fold.Key("j.k. ROWLING"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "J.K. Rowling", found.Name)

	_, err = repo.FindByKey(ctx, reference.KindCategory, fold.Key("J.K. Rowling"))
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	_, err = repo.Create(ctx, reference.KindAuthor, "J.K. ROWLING", fold.Key("J.K. ROWLING"))
	assert.ErrorIs(t, err, dberr.ErrConflict)

	_, err = repo.FindByID(ctx, reference.KindAuthor, 99)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

/*
TestPostgresRepository_ExpandingKey stores a name whose folded key is three
times its length.
*/
func TestPostgresRepository_ExpandingKey(t *testing.T) {
	service := newService(reference.NewPostgresRepository(pgtest.Open(t)))
	name := strings.Repeat("ﬃ", 80)

	resolved, err := service.Resolve(context.Background(), reference.KindCategory, []string{name, strings.Repeat("FFI", 80)})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, name, resolved[0].Name)
}

func TestPostgresRepository_Search(t *testing.T) {
	service := newService(reference.NewPostgresRepository(pgtest.Open(t)))
	ctx := context.Background()

	_, err := service.Resolve(ctx, reference.KindAuthor,
		[]string{"Rowan Atkinson", "J.K. Rowling", "Mary GrandPré", "100% Author"})
	require.NoError(t, err)

	page, total, err := service.Search(ctx, reference.KindAuthor, reference.Filter{Query: "ROW"}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "J.K. Rowling", page[0].Name)

	next, _, err := service.Search(ctx, reference.KindAuthor, reference.Filter{Query: "ROW"}, 1, 1)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, "Rowan Atkinson", next[0].Name)

	all, total, err := service.Search(ctx, reference.KindAuthor, reference.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, all, 4)

	literal, err := service.Match(ctx, reference.KindAuthor, "0% A")
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "100% Author", literal[0].Name)

	wildcard, err := service.Match(ctx, reference.KindAuthor, "_")
	require.NoError(t, err)
	assert.Empty(t, wildcard)
}
