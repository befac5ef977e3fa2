// Package dbx holds the database/sql helpers shared by the local
// repositories: DBTX, satisfied by both *sql.DB and *sql.Tx, and
// a transaction runner.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxBeginner starts transactions; *sql.DB satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// InTx runs fn inside a transaction and returns its result. The transaction
// commits when fn succeeds and rolls back when fn fails or panics. On any
// error the zero T is returned; a failed rollback is joined to fn's error.
// Panics are rethrown after the rollback.
//
//	prev, err := dbx.InTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) (string, error) {
//	    ...
//	})
func InTx[T any](ctx context.Context, db TxBeginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) (T, error)) (res T, err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return res, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err == nil {
			if err = tx.Commit(); err != nil {
				err = fmt.Errorf("commit tx: %w", err)
			}
		} else if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
		if err != nil {
			var zero T
			res = zero
		}
	}()

	return fn(ctx, tx)
}
