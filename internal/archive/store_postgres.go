// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
	"github.com/taibuivan/dishdiary/internal/platform/database/schema"
	"github.com/taibuivan/dishdiary/internal/platform/dberr"
	"github.com/taibuivan/dishdiary/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on the kitchen.archive table.
type PostgresRepository struct {
	db postgres.DB
}

// NewRepository creates a new PostgreSQL archive repository.
func NewRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	tbl          = schema.KitchenArchive
	entryColumns = strings.Join(tbl.Columns(), ", ")
)

// Create inserts the entry and stamps its creation time. A recipe deleted
// in the meantime is reported as NOT_FOUND.
func (repository *PostgresRepository) Create(ctx context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tbl.Table, entryColumns,
	)

	entry.CreatedAt = time.Now().UTC()

	_, err := repository.db.Exec(ctx, query,
		entry.ID, entry.UserID, entry.RecipeID, entry.Title,
		entry.CookedAt.UTC(), entry.Stars, entry.Note, entry.CreatedAt,
	)
	// A foreign key failure means the recipe was deleted after Record read it.
	return dberr.Wrap(err, "Recipe", "postgres_archive_create")
}

// ListByUser pages through the user's entries with a window count.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID, recipeID string, limit, offset int) ([]*Entry, int, error) {
	var queryBuilder strings.Builder
	args := []any{userID}
	argID := 2

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s = $1`,
		entryColumns, tbl.Table, tbl.UserID))

	if recipeID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", tbl.RecipeID, argID))
		args = append(args, recipeID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		tbl.CookedAt, tbl.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Archive entry", "postgres_archive_list")
	}
	defer rows.Close()

	entries := make([]*Entry, 0, limit)
	total := 0
	for rows.Next() {
		entry, err := scanEntry(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Archive entry", "postgres_archive_scan")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Archive entry", "postgres_archive_list")
	}

	return entries, total, nil
}

// DeleteOne matches on both ID and owner.
func (repository *PostgresRepository) DeleteOne(ctx context.Context, userID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, tbl.Table, tbl.ID, tbl.UserID)

	tag, err := repository.db.Exec(ctx, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "Archive entry", "postgres_archive_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Archive entry")
	}
	return nil
}

// DeleteAll is idempotent: a user without entries gets 0.
func (repository *PostgresRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tbl.Table, tbl.UserID)

	tag, err := repository.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "Archive entry", "postgres_archive_delete_all")
	}
	return tag.RowsAffected(), nil
}

func scanEntry(row pgx.Row, extra ...any) (*Entry, error) {
	entry := &Entry{}
	var stars *int16
	dest := []any{
		&entry.ID, &entry.UserID, &entry.RecipeID, &entry.Title,
		&entry.CookedAt, &stars, &entry.Note, &entry.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if stars != nil {
		value := int(*stars)
		entry.Stars = &value
	}
	return entry, nil
}
