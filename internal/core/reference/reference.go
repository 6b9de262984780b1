// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the name-keyed entities shared across volumes.

Authors and categories have the same shape and lifecycle: they are created the
first time the metadata source mentions a name, and never updated or deleted by
the ingestion pipeline afterwards.

# Core Responsibility

  - Canonicalization: [Resolver] turns free-text names into one persisted [Entity]
    per case-folded name (get-or-create).
  - Discovery: substring search and lookup by ID for the public API.

Name equality is decided by [fold.Key]; the store enforces it with a unique
index on the folded key so concurrent resolvers cannot create twins.
*/
package reference

import (
	"time"

	"github.com/taibuivan/libris/internal/platform/database/schema"
)

// # Kinds

// Kind selects which reference table an operation targets.
type Kind string

const (
	KindAuthor   Kind = "author"
	KindCategory Kind = "category"
)

// Valid reports whether kind is one of the known kinds.
func (kind Kind) Valid() bool {
	return kind == KindAuthor || kind == KindCategory
}

// Label is the capitalized resource name used in client messages.
func (kind Kind) Label() string {
	if kind == KindCategory {
		return "Category"
	}
	return "Author"
}

// table returns the schema descriptor backing kind.
func (kind Kind) table() schema.CatalogReferenceTable {
	if kind == KindCategory {
		return schema.CatalogCategory
	}
	return schema.CatalogAuthor
}

// # Entity

// Entity is a persisted author or category.
type Entity struct {
	ID        int       `json:"id"`
	Kind      Kind      `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter holds the parameters for a paginated reference search.
type Filter struct {
	Query string // Case-insensitive substring of the name
}

// Global field names for validation
const (
	FieldName  = "name"
	FieldQuery = "q"
)
