// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/dishdiary/internal/platform/database/schema"
	"github.com/taibuivan/dishdiary/internal/platform/dberr"
	"github.com/taibuivan/dishdiary/internal/platform/postgres"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db postgres.DB
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

/*
Create persists a new user record into the users.account table.

Returns:
  - error: CONFLICT when the email is taken, or wrapped storage errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.UserAccount.Table, userColumns)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return dberr.Wrap(err, "User", "postgres_user_repo_create")
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findOne(ctx, schema.UserAccount.ID, id, "postgres_user_repo_find_by_id")
}

// FindByEmail retrieves a user record by its lower-cased email.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findOne(ctx, schema.UserAccount.Email, email, "postgres_user_repo_find_by_email")
}

func (repository *PostgresUserRepository) findOne(ctx context.Context, column, value, action string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.UserAccount.Table, column)

	user, err := scanUser(repository.db.QueryRow(ctx, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, "User", action)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
