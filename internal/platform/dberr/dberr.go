// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies low-level database errors into [apperr.AppError]
// values so storage details never reach the client.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
)

// Wrap inspects a database error and converts it for the given resource.
//
//   - no rows           → NotFound(resource)
//   - unique violation  → Conflict
//   - foreign key       → NotFound(resource), the referenced row is gone
//   - connection issues → Upstream
//   - anything else     → Internal (cause kept for logs)
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	if IsUniqueViolation(err) {
		return apperr.Conflict(resource + " already exists").WithCause(err)
	}

	if IsForeignKeyViolation(err) {
		return apperr.NotFound(resource).WithCause(err)
	}

	cause := fmt.Errorf("%s: %w", action, err)

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Upstream("Database", cause)
	}

	return apperr.Internal(cause)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key failure.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
