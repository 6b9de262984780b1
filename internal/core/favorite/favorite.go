// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package favorite manages the user-to-volume favorite relation and the
popularity ranking derived from it.

An edge is identified by (user, volume) and carries no other state, so adding
and removing are idempotent. The user ID is the subject of the verified access
token; the catalog does not store accounts.
*/
package favorite

import (
	"context"

	"github.com/taibuivan/libris/internal/core/volume"
)

// Ranking is one row of the popularity ranking.
type Ranking struct {
	VolumeID string
	Count    int
}

// Membership is the answer to "is this volume one of my favorites".
type Membership struct {
	VolumeID string `json:"volume_id"`
	Favorite bool   `json:"favorite"`
}

// VolumeReader is the slice of [volume.Repository] the favorites service reads.
type VolumeReader interface {
	FindByID(context context.Context, id string) (*volume.Volume, error)
	FindByIDs(context context.Context, ids []string) ([]*volume.Volume, error)
}

// Global field names for validation
const (
	FieldVolumeID = "volume_id"
	FieldTopN     = "n"
)
