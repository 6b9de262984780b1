// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package volume

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libris/internal/core/reference"
	"github.com/taibuivan/libris/internal/platform/database/schema"
	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/pkg/query"
	"github.com/taibuivan/libris/pkg/slice"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
//
// Reads hydrate authors and categories with correlated json_agg sub-queries so
// a volume and its links come back in one round-trip.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed volume store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// linkTables returns the junction and reference tables backing kind.
func linkTables(kind reference.Kind) (schema.CatalogVolumeReferenceTable, schema.CatalogReferenceTable) {
	if kind == reference.KindCategory {
		return schema.CatalogVolumeCategory, schema.CatalogCategory
	}
	return schema.CatalogVolumeAuthor, schema.CatalogAuthor
}

// aggregateLinks renders the sub-query that folds a volume's links of kind
// into a JSON array ordered by position.
func aggregateLinks(kind reference.Kind) string {
	junction, table := linkTables(kind)
	return fmt.Sprintf(`COALESCE((
			SELECT json_agg(json_build_object('id', r.%s, 'name', r.%s, 'created_at', r.%s) ORDER BY j.%s)
			FROM %s r
			JOIN %s j ON r.%s = j.%s
			WHERE j.%s = v.%s
		), '[]')`,
		table.ID, table.Name, table.CreatedAt, junction.Position,
		table.Table,
		junction.Table, table.ID, junction.ReferenceID,
		junction.VolumeID, schema.CatalogVolume.ID,
	)
}

// selectVolumes is the hydrated projection shared by every read. Callers
// append a WHERE / ORDER BY clause referring to the volume as "v".
func selectVolumes() string {
	column := schema.CatalogVolume
	return fmt.Sprintf(`
		SELECT
			v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s,
			%s AS authors,
			%s AS categories
		FROM %s v
	`,
		column.ID, column.Title, column.ISBN10, column.ISBN13, column.PublishedDate,
		column.Language, column.Units, column.CreatedAt, column.UpdatedAt,
		aggregateLinks(reference.KindAuthor),
		aggregateLinks(reference.KindCategory),
		column.Table,
	)
}

func scanVolume(row pgx.Row) (*Volume, error) {
	volume := &Volume{}
	var authorsJSON, categoriesJSON []byte

	err := row.Scan(
		&volume.ID, &volume.Title, &volume.ISBN10, &volume.ISBN13, &volume.PublishedDate,
		&volume.Language, &volume.Units, &volume.CreatedAt, &volume.UpdatedAt,
		&authorsJSON, &categoriesJSON,
	)
	if err != nil {
		return nil, err
	}

	if volume.Authors, err = decodeLinks(authorsJSON, reference.KindAuthor); err != nil {
		return nil, err
	}
	if volume.Categories, err = decodeLinks(categoriesJSON, reference.KindCategory); err != nil {
		return nil, err
	}
	return volume, nil
}

func decodeLinks(raw []byte, kind reference.Kind) ([]reference.Entity, error) {
	entities := []reference.Entity{}
	if err := json.Unmarshal(raw, &entities); err != nil {
		return nil, fmt.Errorf("decode %s links: %w", kind, err)
	}
	for index := range entities {
		entities[index].Kind = kind
	}
	return entities, nil
}

// # Lookups

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Volume, error) {
	return repository.findOne(context, schema.CatalogVolume.ID, id, "get_volume")
}

func (repository *PostgresRepository) FindByISBN10(context context.Context, isbn10 string) (*Volume, error) {
	return repository.findOne(context, schema.CatalogVolume.ISBN10, isbn10, "find_volume_by_isbn10")
}

func (repository *PostgresRepository) FindByISBN13(context context.Context, isbn13 string) (*Volume, error) {
	return repository.findOne(context, schema.CatalogVolume.ISBN13, isbn13, "find_volume_by_isbn13")
}

func (repository *PostgresRepository) findOne(context context.Context, column, value, action string) (*Volume, error) {
	sql := selectVolumes() + fmt.Sprintf(` WHERE v.%s = $1`, column)

	volume, err := scanVolume(repository.db.QueryRow(context, sql, value))
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return volume, nil
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []string) ([]*Volume, error) {
	if len(ids) == 0 {
		return []*Volume{}, nil
	}

	sql := selectVolumes() + fmt.Sprintf(` WHERE v.%s = ANY($1::uuid[])`, schema.CatalogVolume.ID)
	found, err := repository.collect(context, "list_volumes_by_id", sql, ids)
	if err != nil {
		return nil, err
	}

	// Restore caller order; ANY() gives none.
	byID := make(map[string]*Volume, len(found))
	for _, volume := range found {
		byID[volume.ID] = volume
	}

	ordered := make([]*Volume, 0, len(found))
	for _, id := range ids {
		if volume, ok := byID[id]; ok {
			ordered = append(ordered, volume)
		}
	}
	return ordered, nil
}

func (repository *PostgresRepository) SearchTitle(context context.Context, term string) ([]*Volume, error) {
	column := schema.CatalogVolume
	sql := selectVolumes() + fmt.Sprintf(` WHERE v.%s ILIKE $1 ORDER BY v.%s ASC, v.%s ASC`,
		column.Title, column.Title, column.ID,
	)
	return repository.collect(context, "search_volume_title", sql, query.Contains(term))
}

func (repository *PostgresRepository) FindByEntity(context context.Context, kind reference.Kind, entityID int) ([]*Volume, error) {
	junction, _ := linkTables(kind)
	column := schema.CatalogVolume

	sql := selectVolumes() + fmt.Sprintf(`
		WHERE EXISTS (SELECT 1 FROM %s j WHERE j.%s = v.%s AND j.%s = $1)
		ORDER BY v.%s ASC, v.%s ASC`,
		junction.Table, junction.VolumeID, column.ID, junction.ReferenceID,
		column.Title, column.ID,
	)
	return repository.collect(context, "list_volumes_by_"+string(kind), sql, entityID)
}

// collect runs a multi-row read and scans every row as a hydrated volume.
func (repository *PostgresRepository) collect(context context.Context, action, sql string, args ...any) ([]*Volume, error) {
	rows, err := repository.db.Query(context, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	volumes := []*Volume{}
	for rows.Next() {
		volume, err := scanVolume(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		volumes = append(volumes, volume)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return volumes, nil
}

// # Persistence

/*
Create persists a volume and its links inside a single transaction.

Description: The volume row is inserted first so the junction foreign keys
resolve, then authors and categories are linked in pipelined batches. Any
failure rolls everything back, so a volume never exists without its links.

Parameters:
  - context: context.Context
  - volume: *Volume (ID, timestamps and resolved entities already set)

Returns:
  - error: dberr.ErrConflict when either ISBN is already taken, otherwise execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, volume *Volume) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_volume")
	}
	defer func() { _ = transaction.Rollback(context) }()

	// 1. Volume row
	column := schema.CatalogVolume
	insertSQL := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		column.Table,
		column.ID, column.Title, column.ISBN10, column.ISBN13, column.PublishedDate,
		column.Language, column.Units, column.CreatedAt, column.UpdatedAt,
	)

	_, err = transaction.Exec(context, insertSQL,
		volume.ID, volume.Title, volume.ISBN10, volume.ISBN13, volume.PublishedDate,
		volume.Language, volume.Units, volume.CreatedAt, volume.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_volume")
	}

	// 2. Links, in resolver order
	if err := repository.insertLinks(context, transaction, reference.KindAuthor, volume.ID, volume.Authors); err != nil {
		return err
	}
	if err := repository.insertLinks(context, transaction, reference.KindCategory, volume.ID, volume.Categories); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_volume")
	}
	return nil
}

/*
insertLinks queues one junction row per entity and sends them as a single batch.

Parameters:
  - context: context.Context
  - transaction: pgx.Tx (the enclosing write)
  - kind: reference.Kind (selects the junction table)
  - volumeID: string
  - entities: []reference.Entity (slice order becomes the position column)

Returns:
  - error: Batch execution errors
*/
func (repository *PostgresRepository) insertLinks(context context.Context, transaction pgx.Tx, kind reference.Kind, volumeID string, entities []reference.Entity) error {
	if len(entities) == 0 {
		return nil
	}

	junction, _ := linkTables(kind)
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		junction.Table, junction.VolumeID, junction.ReferenceID, junction.Position,
	)

	ids := slice.Map(entities, func(entity reference.Entity) int { return entity.ID })

	batch := &pgx.Batch{}
	for position, entityID := range ids {
		batch.Queue(insertSQL, volumeID, entityID, position)
	}

	response := transaction.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return dberr.Wrap(err, "link_volume_"+string(kind))
	}
	return nil
}
