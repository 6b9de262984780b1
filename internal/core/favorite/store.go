// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import "context"

// Repository is the storage contract for favorite edges.
type Repository interface {
	// Add inserts the edge and reports whether it was new.
	Add(context context.Context, userID, volumeID string) (bool, error)

	// Remove deletes the edge and reports whether it existed.
	Remove(context context.Context, userID, volumeID string) (bool, error)

	Contains(context context.Context, userID, volumeID string) (bool, error)

	// ListVolumeIDs returns the user's favorites, most recently added first.
	ListVolumeIDs(context context.Context, userID string) ([]string, error)

	// Top ranks volumes by favorite count, descending, ties broken by
	// volume ID ascending. Volumes nobody favorited never appear.
	Top(context context.Context, limit int) ([]Ranking, error)
}
