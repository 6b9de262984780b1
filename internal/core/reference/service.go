// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/internal/platform/validate"
	"github.com/taibuivan/libris/pkg/fold"
)

// # Service Layer

// Service owns the get-or-create policy for authors and categories and the
// read paths the public API exposes for them.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new reference [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Canonicalization

/*
Resolve maps free-text names to persisted entities of the given kind.

Names are cleaned, cut to the name bound, and collapsed by folded key so the
result holds exactly one entity per distinct name, in first-seen order. Each
name is looked up by key and created when absent.

The check-then-create sequence is not atomic. When a concurrent resolver wins
the race the unique index rejects our insert, and the winner's row is re-read
and reused instead of surfacing the conflict.

Entities created here are not rolled back if the caller later fails; they are
reusable by the next registration.

Parameters:
  - context: context.Context
  - kind: Kind (author or category)
  - names: []string (raw names from the metadata source)

Returns:
  - []Entity: One resolved entity per distinct name, never nil
  - error: Storage failures
*/
func (service *Service) Resolve(context context.Context, kind Kind, names []string) ([]Entity, error) {
	resolved := make([]Entity, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, raw := range names {
		name := fold.Truncate(fold.Clean(raw), constants.MaxNameLength)
		if name == "" {
			continue
		}

		key := fold.Key(name)
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}

		entity, err := service.getOrCreate(context, kind, name, key)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *entity)
	}

	return resolved, nil
}

// getOrCreate resolves one cleaned name.
func (service *Service) getOrCreate(context context.Context, kind Kind, name, key string) (*Entity, error) {

	// 1. Reuse an existing entity
	existing, err := service.repo.FindByKey(context, kind, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	// 2. First encounter: create it
	created, err := service.repo.Create(context, kind, name, key)
	if err == nil {
		service.logger.Info(string(kind)+"_created",
			slog.Int("id", created.ID),
			slog.String("name", created.Name),
		)
		return created, nil
	}
	if !errors.Is(err, dberr.ErrConflict) {
		return nil, err
	}

	// 3. Lost the race to a concurrent writer: adopt its row
	winner, err := service.repo.FindByKey(context, kind, key)
	if err != nil {
		return nil, err
	}

	service.logger.Debug(string(kind)+"_create_raced",
		slog.Int("id", winner.ID),
		slog.String("name", winner.Name),
	)
	return winner, nil
}

// # Discovery

/*
Get retrieves a single entity by ID.

Returns:
  - *Entity: The entity
  - error: apperr NOT_FOUND when the ID is unknown
*/
func (service *Service) Get(context context.Context, kind Kind, id int) (*Entity, error) {
	entity, err := service.repo.FindByID(context, kind, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFound(kind.Label())
	}
	return entity, err
}

/*
Search pages through entities whose name contains the filter query.

An empty query lists everything. A query longer than the search bound is
rejected with INVALID_USER_INPUT before reaching the store.
*/
func (service *Service) Search(context context.Context, kind Kind, filter Filter, limit, offset int) ([]*Entity, int, error) {
	validator := &validate.Validator{}
	validator.MaxLen(FieldQuery, filter.Query, constants.MaxSearchLength)
	if validator.HasErrors() {
		return nil, 0, apperr.InvalidUserInput("Search query is too long")
	}

	entities, total, err := service.repo.Search(context, kind, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if entities == nil {
		entities = []*Entity{}
	}
	return entities, total, nil
}

/*
Match returns every entity whose name contains query.

Callers validate the query. The result is never nil, so a miss is an empty
slice rather than an absent result.
*/
func (service *Service) Match(context context.Context, kind Kind, query string) ([]*Entity, error) {
	entities, err := service.repo.SearchAll(context, kind, query)
	if err != nil {
		return nil, err
	}
	if entities == nil {
		entities = []*Entity{}
	}
	return entities, nil
}
