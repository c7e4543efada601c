// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/infrastructure/database"
)

// SQLite returns a migrated database in a fresh temp file, closed on cleanup.
func SQLite(t testing.TB) *sql.DB {
	t.Helper()

	db := database.NewSQLiteDB(filepath.Join(t.TempDir(), "library.sqlite"))
	require.NoError(t, db.Connect(context.Background()))
	t.Cleanup(func() { _ = db.Close() })

	_, err := database.MigrateSQLite(context.Background(), db.DB)
	require.NoError(t, err)
	return db.DB
}

// Postgres connects to TEST_POSTGRES_DSN, migrates and empties the catalog
// tables. The test is skipped when the variable is unset.
func Postgres(t testing.TB) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = database.MigratePostgres(ctx, pool)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, "TRUNCATE books, authors RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return pool
}
