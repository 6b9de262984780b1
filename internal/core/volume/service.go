// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package volume

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/libris/internal/core/reference"
	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/internal/platform/validate"
	"github.com/taibuivan/libris/pkg/isbn"
)

// # Service Layer

// Service is the read façade over registered volumes.
type Service struct {
	repo     Repository
	entities EntityMatcher
	logger   *slog.Logger
}

// NewService constructs a new volume [Service].
func NewService(repo Repository, entities EntityMatcher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		entities: entities,
		logger:   logger,
	}
}

// # Lookups

/*
FindByID retrieves a volume by its identifier.

Returns:
  - *Volume: The hydrated volume
  - error: apperr NOT_FOUND when absent
*/
func (service *Service) FindByID(context context.Context, id string) (*Volume, error) {
	volume, err := service.repo.FindByID(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFound("Volume")
	}
	return volume, err
}

/*
FindByISBN retrieves a volume by either ISBN form.

The input is normalized and classified first. The ISBN-10 column is tried
before the ISBN-13 column and the first hit wins. Trying both lets a caller
holding a 13-digit code find a volume registered before its 10-digit twin
was known, and vice versa.

Parameters:
  - context: context.Context
  - raw: string (hyphens and spaces allowed)

Returns:
  - *Volume: The matching volume
  - error: INVALID_ISBN for malformed input, NOT_FOUND when no volume matches
*/
func (service *Service) FindByISBN(context context.Context, raw string) (*Volume, error) {
	normalized := isbn.Normalize(raw)
	if isbn.Classify(normalized) == isbn.Invalid {
		return nil, apperr.InvalidISBN(raw)
	}

	volume, err := service.repo.FindByISBN10(context, normalized)
	if err == nil {
		return volume, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	volume, err = service.repo.FindByISBN13(context, normalized)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFound("Volume")
	}
	return volume, err
}

// # Search

// SearchByTitle returns volumes whose title contains query. Never nil.
func (service *Service) SearchByTitle(context context.Context, query string) ([]*Volume, error) {
	term, err := searchTerm(FieldTitle, query)
	if err != nil {
		return nil, err
	}

	volumes, err := service.repo.SearchTitle(context, term)
	if err != nil {
		return nil, err
	}
	return nonNil(volumes), nil
}

// SearchByAuthor returns volumes linked to any author whose name contains query.
func (service *Service) SearchByAuthor(context context.Context, query string) ([]*Volume, error) {
	return service.searchByEntity(context, reference.KindAuthor, FieldAuthor, query)
}

// SearchByCategory returns volumes linked to any category whose name contains query.
func (service *Service) SearchByCategory(context context.Context, query string) ([]*Volume, error) {
	return service.searchByEntity(context, reference.KindCategory, FieldCategory, query)
}

/*
searchByEntity is the two-stage search behind author and category lookups.

Matching entities are found first, then the volumes linked to each are
collected. A volume linked to several matching entities appears once, at the
position it was first seen.

Returns:
  - []*Volume: Never nil; empty when no entity matched
  - error: INVALID_USER_INPUT for an empty or oversized query, storage errors
*/
func (service *Service) searchByEntity(context context.Context, kind reference.Kind, field, query string) ([]*Volume, error) {
	term, err := searchTerm(field, query)
	if err != nil {
		return nil, err
	}

	// 1. Entities whose name matches
	entities, err := service.entities.Match(context, kind, term)
	if err != nil {
		return nil, err
	}

	// 2. Union of their volumes, first occurrence wins
	volumes := []*Volume{}
	seen := make(map[string]struct{})
	for _, entity := range entities {
		linked, err := service.repo.FindByEntity(context, kind, entity.ID)
		if err != nil {
			return nil, err
		}
		for _, volume := range linked {
			if _, duplicate := seen[volume.ID]; duplicate {
				continue
			}
			seen[volume.ID] = struct{}{}
			volumes = append(volumes, volume)
		}
	}

	return volumes, nil
}

// searchTerm trims query and enforces the rune bounds shared by all searches.
func searchTerm(field, query string) (string, error) {
	term := strings.TrimSpace(query)

	validator := &validate.Validator{}
	validator.
		MinLen(field, term, constants.MinSearchLength).
		MaxLen(field, term, constants.MaxSearchLength)

	if validator.HasErrors() {
		return "", apperr.InvalidUserInput("Search query must be between 1 and 80 characters")
	}
	return term, nil
}

func nonNil(volumes []*Volume) []*Volume {
	if volumes == nil {
		return []*Volume{}
	}
	return volumes
}
