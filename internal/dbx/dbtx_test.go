package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT NOT NULL);`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	return n
}

func TestInTx_CommitsAndReturnsResult(t *testing.T) {
	db := setupDB(t)

	n, err := InTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (int64, error) {
		res, err := tx.ExecContext(ctx, `INSERT INTO kv(k, v) VALUES ('jwt', 'a'), ('theme', 'dark')`)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 2, countRows(t, db), "must commit on success")
}

func TestInTx_RollbackOnFnErrorZeroesResult(t *testing.T) {
	db := setupDB(t)

	v, err := InTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (string, error) {
		_, e := tx.ExecContext(ctx, `INSERT INTO kv(k, v) VALUES ('jwt', 'a')`)
		require.NoError(t, e)
		return "partial", errors.New("boom")
	})
	require.EqualError(t, err, "boom")
	assert.Empty(t, v)
	assert.Equal(t, 0, countRows(t, db), "must rollback when fn returns error")
}

func TestInTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, countRows(t, db), "must rollback on panic")
	}()

	_, _ = InTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (int, error) {
		_, e := tx.ExecContext(ctx, `INSERT INTO kv(k, v) VALUES ('jwt', 'a')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestInTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	_, err := InTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (int, error) {
		t.Fatal("fn must not run")
		return 0, nil
	})
	require.ErrorContains(t, err, "begin tx:")
}

func TestInTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("busy"))

	_, err = InTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (int, error) { return 1, nil })
	require.EqualError(t, err, "commit tx: busy")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollbackErrorJoined(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("io"))

	fnErr := errors.New("boom")
	_, err = InTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (int, error) { return 0, fnErr })
	require.ErrorIs(t, err, fnErr)
	assert.Contains(t, err.Error(), "rollback tx: io")
	require.NoError(t, mock.ExpectationsWereMet())
}
