// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/libris/internal/core/volume"
	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/pkg/uuid"
)

// # Service Layer

// Service manages favorite edges and the popularity ranking.
type Service struct {
	repo    Repository
	volumes VolumeReader
	logger  *slog.Logger
}

// NewService constructs a new favorite [Service].
func NewService(repo Repository, volumes VolumeReader, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		volumes: volumes,
		logger:  logger,
	}
}

// # Edge Management

/*
Add marks a volume as a favorite of the user. Adding twice is a no-op.

Parameters:
  - context: context.Context
  - userID: string (token subject)
  - volumeID: string

Returns:
  - error: NOT_FOUND when the volume does not exist
*/
func (service *Service) Add(context context.Context, userID, volumeID string) error {
	if err := service.requireVolume(context, volumeID); err != nil {
		return err
	}

	added, err := service.repo.Add(context, userID, volumeID)
	if err != nil {
		return err
	}

	if added {
		service.logger.InfoContext(context, "favorite_added",
			slog.String("user_id", userID),
			slog.String("volume_id", volumeID),
		)
	}
	return nil
}

// Remove unmarks a volume. Removing an absent favorite succeeds silently.
func (service *Service) Remove(context context.Context, userID, volumeID string) error {
	if !uuid.Valid(volumeID) {
		return nil
	}

	removed, err := service.repo.Remove(context, userID, volumeID)
	if err != nil {
		return err
	}

	if removed {
		service.logger.InfoContext(context, "favorite_removed",
			slog.String("user_id", userID),
			slog.String("volume_id", volumeID),
		)
	}
	return nil
}

// Contains reports whether volumeID is one of the user's favorites.
func (service *Service) Contains(context context.Context, userID, volumeID string) (*Membership, error) {
	membership := &Membership{VolumeID: volumeID}
	if !uuid.Valid(volumeID) {
		return membership, nil
	}

	favorite, err := service.repo.Contains(context, userID, volumeID)
	if err != nil {
		return nil, err
	}
	membership.Favorite = favorite
	return membership, nil
}

// requireVolume maps a missing or malformed volume ID to NOT_FOUND.
func (service *Service) requireVolume(context context.Context, volumeID string) error {
	if !uuid.Valid(volumeID) {
		return apperr.NotFound("Volume")
	}

	_, err := service.volumes.FindByID(context, volumeID)
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Volume")
	}
	return err
}

// # Reads

// List returns the user's favorite volumes, most recent first. Never nil.
func (service *Service) List(context context.Context, userID string) ([]*volume.Volume, error) {
	ids, err := service.repo.ListVolumeIDs(context, userID)
	if err != nil {
		return nil, err
	}
	return service.hydrate(context, ids)
}

/*
Top returns the n most favorited volumes.

Description: A non-positive n falls back to the default ranking size and
larger values are capped. Each volume carries its favorite count. Equal
counts are ordered by volume ID.

Parameters:
  - context: context.Context
  - n: int

Returns:
  - []*volume.Volume: At most n volumes, never nil
  - error: Storage errors
*/
func (service *Service) Top(context context.Context, n int) ([]*volume.Volume, error) {
	limit := n
	if limit <= 0 {
		limit = constants.DefaultTopFavorites
	}
	if limit > constants.MaxTopFavorites {
		limit = constants.MaxTopFavorites
	}

	rankings, err := service.repo.Top(context, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rankings))
	counts := make(map[string]int, len(rankings))
	for _, ranking := range rankings {
		ids = append(ids, ranking.VolumeID)
		counts[ranking.VolumeID] = ranking.Count
	}

	volumes, err := service.hydrate(context, ids)
	if err != nil {
		return nil, err
	}
	for _, ranked := range volumes {
		ranked.FavoriteCount = counts[ranked.ID]
	}
	return volumes, nil
}

func (service *Service) hydrate(context context.Context, ids []string) ([]*volume.Volume, error) {
	if len(ids) == 0 {
		return []*volume.Volume{}, nil
	}

	volumes, err := service.volumes.FindByIDs(context, ids)
	if err != nil {
		return nil, err
	}
	if volumes == nil {
		volumes = []*volume.Volume{}
	}
	return volumes, nil
}
