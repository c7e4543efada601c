package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/infrastructure/database/dbtest"
	"library-catalog/pkg/database"
)

func countAuthors(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM authors").Scan(&n))
	return n
}

func insertAuthor(ctx context.Context, db *sql.DB, name string) error {
	_, err := database.SQLFromContext(ctx, db).ExecContext(ctx, "INSERT INTO authors (name, birth_date) VALUES (?, '1900-01-01')", name)
	return err
}

func TestSQLTransactor_CommitsOnSuccess(t *testing.T) {
	db := dbtest.SQLite(t)
	tx := database.NewSQLTransactor(db)

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := insertAuthor(ctx, db, "a"); err != nil {
			return err
		}
		// nested call joins the open transaction
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return insertAuthor(ctx, db, "b")
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countAuthors(t, db))
}

func TestSQLTransactor_RollsBackOnError(t *testing.T) {
	db := dbtest.SQLite(t)
	tx := database.NewSQLTransactor(db)
	boom := errors.New("boom")

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		require.NoError(t, insertAuthor(ctx, db, "a"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, countAuthors(t, db))
}

func TestSQLTransactor_RollsBackOnPanic(t *testing.T) {
	db := dbtest.SQLite(t)
	tx := database.NewSQLTransactor(db)

	assert.Panics(t, func() {
		_ = tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			require.NoError(t, insertAuthor(ctx, db, "a"))
			panic("boom")
		})
	})
	assert.Zero(t, countAuthors(t, db))
}

func TestPgxTransactor_RollsBackOnError(t *testing.T) {
	pool := dbtest.Postgres(t)
	tx := database.NewPgxTransactor(pool)
	boom := errors.New("boom")

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, err := database.PgxFromContext(ctx, pool).Exec(ctx, "INSERT INTO authors (name, birth_date) VALUES ('a', '1900-01-01')")
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM authors").Scan(&n))
	assert.Zero(t, n)
}
