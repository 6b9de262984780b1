// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/pkg/query"
)

// PostgresRepository stores authors and categories in their own tables
// (catalog.author, catalog.category) with an identical layout.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository wires the repository to a pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectColumns is the projection shared by every read.
func selectColumns(kind Kind) string {
	table := kind.table()
	return fmt.Sprintf("%s, %s, %s", table.ID, table.Name, table.CreatedAt)
}

func scanEntity(row pgx.Row, kind Kind) (*Entity, error) {
	entity := &Entity{Kind: kind}
	if err := row.Scan(&entity.ID, &entity.Name, &entity.CreatedAt); err != nil {
		return nil, err
	}
	return entity, nil
}

func (repository *PostgresRepository) FindByKey(context context.Context, kind Kind, nameKey string) (*Entity, error) {
	table := kind.table()
	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(kind), table.Table, table.NameKey,
	)

	entity, err := scanEntity(repository.db.QueryRow(context, sql, nameKey), kind)
	if err != nil {
		return nil, dberr.Wrap(err, "find_"+string(kind)+"_by_key")
	}
	return entity, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, kind Kind, id int) (*Entity, error) {
	table := kind.table()
	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(kind), table.Table, table.ID,
	)

	entity, err := scanEntity(repository.db.QueryRow(context, sql, id), kind)
	if err != nil {
		return nil, dberr.Wrap(err, "get_"+string(kind))
	}
	return entity, nil
}

// Create inserts a new row. The unique index on the folded key turns a
// concurrent duplicate into [dberr.ErrConflict].
func (repository *PostgresRepository) Create(context context.Context, kind Kind, name, nameKey string) (*Entity, error) {
	table := kind.table()
	sql := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		RETURNING %s
	`,
		table.Table, table.Name, table.NameKey, table.CreatedAt,
		selectColumns(kind),
	)

	entity, err := scanEntity(repository.db.QueryRow(context, sql, name, nameKey), kind)
	if err != nil {
		return nil, dberr.Wrap(err, "create_"+string(kind))
	}
	return entity, nil
}

func (repository *PostgresRepository) Search(context context.Context, kind Kind, filter Filter, limit, offset int) ([]*Entity, int, error) {
	table := kind.table()

	where := ""
	args := []any{}
	if filter.Query != "" {
		where = fmt.Sprintf("WHERE %s ILIKE $1", table.Name)
		args = append(args, query.Contains(filter.Query))
	}

	var total int
	countSQL := fmt.Sprintf(`SELECT count(*) FROM %s %s`, table.Table, where)
	if err := repository.db.QueryRow(context, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_"+string(kind))
	}

	listSQL := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s ASC, %s ASC LIMIT $%d OFFSET $%d`,
		selectColumns(kind), table.Table, where, table.Name, table.ID, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	entities, err := repository.collect(context, kind, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (repository *PostgresRepository) SearchAll(context context.Context, kind Kind, term string) ([]*Entity, error) {
	table := kind.table()
	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ILIKE $1 ORDER BY %s ASC`,
		selectColumns(kind), table.Table, table.Name, table.ID,
	)
	return repository.collect(context, kind, sql, query.Contains(term))
}

// collect runs a multi-row read and scans every row as an entity of kind.
func (repository *PostgresRepository) collect(context context.Context, kind Kind, sql string, args ...any) ([]*Entity, error) {
	rows, err := repository.db.Query(context, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_"+string(kind))
	}
	defer rows.Close()

	entities := []*Entity{}
	for rows.Next() {
		entity, err := scanEntity(rows, kind)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_"+string(kind))
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_"+string(kind))
	}
	return entities, nil
}
