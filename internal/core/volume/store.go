// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package volume

import (
	"context"

	"github.com/taibuivan/libris/internal/core/reference"
)

// Repository is the storage contract for volumes.
//
// Single-row lookups that miss return [dberr.ErrNotFound]. Multi-row reads
// return an empty, non-nil slice on a miss.
type Repository interface {
	FindByID(context context.Context, id string) (*Volume, error)
	FindByISBN10(context context.Context, isbn10 string) (*Volume, error)
	FindByISBN13(context context.Context, isbn13 string) (*Volume, error)

	// FindByIDs hydrates the given volumes in the order of ids, skipping unknown IDs.
	FindByIDs(context context.Context, ids []string) ([]*Volume, error)

	// SearchTitle returns volumes whose title contains term, case-insensitively.
	SearchTitle(context context.Context, term string) ([]*Volume, error)

	// FindByEntity returns volumes linked to the given author or category.
	FindByEntity(context context.Context, kind reference.Kind, entityID int) ([]*Volume, error)

	// Create writes the volume row and its author and category links
	// atomically. A unique violation on either ISBN yields [dberr.ErrConflict].
	Create(context context.Context, volume *Volume) error
}

// EntityResolver canonicalizes free-text names into persisted entities.
// [reference.Service] satisfies it.
type EntityResolver interface {
	Resolve(context context.Context, kind reference.Kind, names []string) ([]reference.Entity, error)
}

// EntityMatcher finds entities whose name contains a query.
// [reference.Service] satisfies it.
type EntityMatcher interface {
	Match(context context.Context, kind reference.Kind, query string) ([]*reference.Entity, error)
}
