// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pgtest provides a recording [postgres.DB] for repository tests.

The recorder captures every statement with its arguments and answers with
canned results, so the SQL a repository builds can be asserted without a
running database.
*/
package pgtest

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Call is one recorded statement.
type Call struct {
	SQL  string
	Args []any
}

// Recorder implements postgres.DB.
//
// Tag is the command tag Exec returns (e.g. "DELETE 1"). Err is returned by
// Exec and Query and by Scan on rows produced by QueryRow.
type Recorder struct {
	Tag string
	Err error

	mu    sync.Mutex
	calls []Call
}

// Exec records the statement and returns Tag or Err.
func (r *Recorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.record(sql, args)
	if r.Err != nil {
		return pgconn.CommandTag{}, r.Err
	}
	return pgconn.NewCommandTag(r.Tag), nil
}

// Query records the statement and returns an empty result set or Err.
func (r *Recorder) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.record(sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &emptyRows{}, nil
}

// QueryRow records the statement. Scan returns Err, or [pgx.ErrNoRows] when
// Err is nil.
func (r *Recorder) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r.record(sql, args)
	if r.Err != nil {
		return errRow{err: r.Err}
	}
	return errRow{err: pgx.ErrNoRows}
}

// Last returns the most recent statement with whitespace collapsed.
func (r *Recorder) Last() Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}
	}
	return r.calls[len(r.calls)-1]
}

func (r *Recorder) record(sql string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{SQL: strings.Join(strings.Fields(sql), " "), Args: args})
}

type errRow struct{ err error }

func (row errRow) Scan(...any) error { return row.err }

// emptyRows is a [pgx.Rows] with no rows.
type emptyRows struct{ closed bool }

func (rows *emptyRows) Close()                                       { rows.closed = true }
func (rows *emptyRows) Err() error                                   { return nil }
func (rows *emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT 0") }
func (rows *emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (rows *emptyRows) Next() bool                                   { return false }
func (rows *emptyRows) Scan(...any) error                            { return pgx.ErrNoRows }
func (rows *emptyRows) Values() ([]any, error)                       { return nil, nil }
func (rows *emptyRows) RawValues() [][]byte                          { return nil }
func (rows *emptyRows) Conn() *pgx.Conn                              { return nil }
