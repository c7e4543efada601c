package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/infrastructure/database/migrations"
)

const migrationTable = "schema_migrations"

type migrationFile struct {
	name string
	sql  string
}

// loadMigrations đọc các file .sql trong dir, sort theo tên
func loadMigrations(fsys fs.FS, dir string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []migrationFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		files = append(files, migrationFile{name: entry.Name(), sql: string(content)})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files, nil
}

// MigrateSQLite applies the embedded SQLite migrations at most once each.
// Returns the number of newly applied files.
func MigrateSQLite(ctx context.Context, db *sql.DB) (int, error) {
	files, err := loadMigrations(migrations.SQLite, "sqlite")
	if err != nil {
		return 0, err
	}

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`, migrationTable)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return 0, fmt.Errorf("ensure migration table: %w", err)
	}

	applied := 0
	for _, file := range files {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM "+migrationTable+" WHERE name = ?", file.name).Scan(&name)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return applied, fmt.Errorf("check migration %s: %w", file.name, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration %s: %w", file.name, err)
		}
		if _, err := tx.ExecContext(ctx, file.sql); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("apply migration %s: %w", file.name, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)", file.name, time.Now().Unix()); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record migration %s: %w", file.name, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %s: %w", file.name, err)
		}

		log.Info().Str("migration", file.name).Msg("[DATABASE] Applied SQLite migration")
		applied++
	}
	return applied, nil
}

// MigratePostgres applies the embedded PostgreSQL migrations at most once each.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	files, err := loadMigrations(migrations.Postgres, "postgres")
	if err != nil {
		return 0, err
	}

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`, migrationTable)
	if _, err := pool.Exec(ctx, createSQL); err != nil {
		return 0, fmt.Errorf("ensure migration table: %w", err)
	}

	applied := 0
	for _, file := range files {
		var exists bool
		err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+migrationTable+" WHERE name = $1)", file.name).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", file.name, err)
		}
		if exists {
			continue
		}

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, file.sql); err != nil {
				return fmt.Errorf("apply migration %s: %w", file.name, err)
			}
			_, err := tx.Exec(ctx, "INSERT INTO "+migrationTable+" (name, applied_at) VALUES ($1, $2)", file.name, time.Now().Unix())
			if err != nil {
				return fmt.Errorf("record migration %s: %w", file.name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		log.Info().Str("migration", file.name).Msg("[DATABASE] Applied PostgreSQL migration")
		applied++
	}
	return applied, nil
}
