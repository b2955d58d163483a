// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/dishdiary/internal/platform/database/schema"
	"github.com/taibuivan/dishdiary/internal/platform/dberr"
	"github.com/taibuivan/dishdiary/internal/platform/postgres"
	"github.com/taibuivan/dishdiary/pkg/slug"
)

// PostgresRepository implements [Repository] on the kitchen.recipe table.
type PostgresRepository struct {
	db postgres.DB
}

// NewRepository creates a new PostgreSQL recipe repository.
func NewRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	tbl           = schema.KitchenRecipe
	recipeColumns = strings.Join(tbl.Columns(), ", ")
)

// ListByOwner issues the owner-scoped query.
func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	return repository.list(ctx, fmt.Sprintf("%s = $1", tbl.OwnerID), ownerID, filter, limit, offset)
}

// ListPublic issues the visibility-scoped query.
func (repository *PostgresRepository) ListPublic(ctx context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	return repository.list(ctx, fmt.Sprintf("%s = $1", tbl.IsPublic), true, filter, limit, offset)
}

/*
list runs one scoped listing.

Description: The scope predicate always binds $1. A search term, when
present, is folded the same way titles are and matched as a substring of
the stored title key. COUNT(*) OVER() returns the total alongside the page.
*/
func (repository *PostgresRepository) list(ctx context.Context, scope string, scopeArg any, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	var queryBuilder strings.Builder
	args := []any{scopeArg}
	argID := 2

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s`,
		recipeColumns, tbl.Table, scope))

	if key := slug.From(filter.Query); key != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s LIKE '%%' || $%d || '%%'", tbl.TitleKey, argID))
		args = append(args, key)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		tbl.CreatedAt, tbl.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Recipe", "postgres_recipe_list")
	}
	defer rows.Close()

	recipes := make([]*Recipe, 0, limit)
	total := 0
	for rows.Next() {
		r, err := scanRecipe(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Recipe", "postgres_recipe_scan")
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Recipe", "postgres_recipe_list")
	}

	return recipes, total, nil
}

// FindByID retrieves a recipe by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, recipeColumns, tbl.Table, tbl.ID)

	r, err := scanRecipe(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Recipe", "postgres_recipe_find_by_id")
	}
	return r, nil
}

// Create inserts a new recipe with an empty cook history.
func (repository *PostgresRepository) Create(ctx context.Context, r *Recipe) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		tbl.Table,
		tbl.ID, tbl.OwnerID, tbl.Title, tbl.TitleKey, tbl.Author, tbl.Description,
		tbl.Ingredients, tbl.Instructions, tbl.Duration, tbl.Portion, tbl.IsPublic,
		tbl.ImageURL, tbl.ImageKey, tbl.CreatedAt, tbl.UpdatedAt,
	)

	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now
	if r.Cooked == nil {
		r.Cooked = []time.Time{}
	}

	_, err := repository.db.Exec(ctx, query,
		r.ID, r.OwnerID, r.Title, slug.From(r.Title), r.Author, r.Description,
		r.Ingredients, r.Instructions, r.Duration, r.Portion, r.IsPublic,
		r.ImageURL, r.ImageKey, r.CreatedAt, r.UpdatedAt,
	)
	return dberr.Wrap(err, "Recipe", "postgres_recipe_create")
}

// Update writes every mutable column and bumps updatedat.
func (repository *PostgresRepository) Update(ctx context.Context, r *Recipe) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13
		WHERE %s = $1
		RETURNING %s`,
		tbl.Table,
		tbl.Title, tbl.TitleKey, tbl.Author, tbl.Description, tbl.Ingredients, tbl.Instructions,
		tbl.Duration, tbl.Portion, tbl.IsPublic, tbl.ImageURL, tbl.ImageKey, tbl.UpdatedAt,
		tbl.ID,
		tbl.Cooked,
	)

	r.UpdatedAt = time.Now().UTC()

	err := repository.db.QueryRow(ctx, query,
		r.ID, r.Title, slug.From(r.Title), r.Author, r.Description, r.Ingredients, r.Instructions,
		r.Duration, r.Portion, r.IsPublic, r.ImageURL, r.ImageKey, r.UpdatedAt,
	).Scan(&r.Cooked)
	return dberr.Wrap(err, "Recipe", "postgres_recipe_update")
}

// Delete removes the recipe. Archive entries of every user survive with
// their recipe link set to NULL (ON DELETE SET NULL).
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tbl.Table, tbl.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "Recipe", "postgres_recipe_delete")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound()
	}
	return nil
}

// AppendCookDate appends in a single statement so concurrent appends never
// overwrite each other.
func (repository *PostgresRepository) AppendCookDate(ctx context.Context, id string, cookedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = array_append(%s, $2) WHERE %s = $1`,
		tbl.Table, tbl.Cooked, tbl.Cooked, tbl.ID)

	tag, err := repository.db.Exec(ctx, query, id, cookedAt.UTC())
	if err != nil {
		return dberr.Wrap(err, "Recipe", "postgres_recipe_append_cook_date")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound()
	}
	return nil
}

// scanRecipe reads the columns of [schema.KitchenRecipeTable.Columns] plus
// any trailing destinations (e.g. a window count).
func scanRecipe(row pgx.Row, extra ...any) (*Recipe, error) {
	r := &Recipe{}
	dest := []any{
		&r.ID, &r.OwnerID, &r.Title, &r.Author, &r.Description, &r.Ingredients,
		&r.Instructions, &r.Duration, &r.Portion, &r.IsPublic, &r.ImageURL,
		&r.ImageKey, &r.Cooked, &r.CreatedAt, &r.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return r, nil
}
