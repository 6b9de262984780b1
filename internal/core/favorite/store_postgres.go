// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libris/internal/platform/database/schema"
	"github.com/taibuivan/libris/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on the catalog.favorite table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed favorite store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Add inserts the (user, volume) edge.

Description: The primary key makes the insert idempotent; a repeated add is
absorbed by ON CONFLICT DO NOTHING and reported as not new.

Parameters:
  - context: context.Context
  - userID: string
  - volumeID: string

Returns:
  - bool: true when a row was inserted
  - error: Execution errors
*/
func (repository *PostgresRepository) Add(context context.Context, userID, volumeID string) (bool, error) {
	column := schema.CatalogFavorite
	sql := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		column.Table, column.UserID, column.VolumeID, column.CreatedAt,
		column.UserID, column.VolumeID,
	)

	tag, err := repository.db.Exec(context, sql, userID, volumeID)
	if err != nil {
		return false, dberr.Wrap(err, "add_favorite")
	}
	return tag.RowsAffected() == 1, nil
}

func (repository *PostgresRepository) Remove(context context.Context, userID, volumeID string) (bool, error) {
	column := schema.CatalogFavorite
	sql := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		column.Table, column.UserID, column.VolumeID,
	)

	tag, err := repository.db.Exec(context, sql, userID, volumeID)
	if err != nil {
		return false, dberr.Wrap(err, "remove_favorite")
	}
	return tag.RowsAffected() == 1, nil
}

func (repository *PostgresRepository) Contains(context context.Context, userID, volumeID string) (bool, error) {
	column := schema.CatalogFavorite
	sql := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		column.Table, column.UserID, column.VolumeID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, sql, userID, volumeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "contains_favorite")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListVolumeIDs(context context.Context, userID string) ([]string, error) {
	column := schema.CatalogFavorite
	sql := fmt.Sprintf(`SELECT %s::text FROM %s WHERE %s = $1 ORDER BY %s DESC, %s ASC`,
		column.VolumeID, column.Table, column.UserID, column.CreatedAt, column.VolumeID,
	)

	rows, err := repository.db.Query(context, sql, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_favorites")
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_favorite")
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_favorites")
	}
	return ids, nil
}

/*
Top aggregates the favorite table into the popularity ranking.

Description: Only volumes with at least one edge exist in the table, so the
zero-favorite exclusion falls out of the GROUP BY. The secondary sort on the
volume ID makes equal counts come back in a stable order.

Parameters:
  - context: context.Context
  - limit: int (already clamped by the service)

Returns:
  - []Ranking: At most limit rows
  - error: Execution errors
*/
func (repository *PostgresRepository) Top(context context.Context, limit int) ([]Ranking, error) {
	column := schema.CatalogFavorite
	sql := fmt.Sprintf(`
		SELECT %s::text, COUNT(*) AS favorites
		FROM %s
		GROUP BY %s
		ORDER BY favorites DESC, %s ASC
		LIMIT $1
	`,
		column.VolumeID, column.Table, column.VolumeID, column.VolumeID,
	)

	rows, err := repository.db.Query(context, sql, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "rank_favorites")
	}
	defer rows.Close()

	rankings := []Ranking{}
	for rows.Next() {
		var ranking Ranking
		if err := rows.Scan(&ranking.VolumeID, &ranking.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_ranking")
		}
		rankings = append(rankings, ranking)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "rank_favorites")
	}
	return rankings, nil
}
