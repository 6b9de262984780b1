// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// Repository is the storage contract for reference entities.
//
// Lookups that miss return [dberr.ErrNotFound]. Create returns
// [dberr.ErrConflict] when another writer already owns the folded name.
type Repository interface {
	FindByKey(context context.Context, kind Kind, nameKey string) (*Entity, error)
	FindByID(context context.Context, kind Kind, id int) (*Entity, error)
	Create(context context.Context, kind Kind, name, nameKey string) (*Entity, error)

	// Search pages through entities whose name contains filter.Query.
	Search(context context.Context, kind Kind, filter Filter, limit, offset int) ([]*Entity, int, error)

	// SearchAll returns every entity whose name contains query, ordered by ID.
	SearchAll(context context.Context, kind Kind, query string) ([]*Entity, error)
}
