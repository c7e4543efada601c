package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// sqlitePragmas are applied to every connection through the DSN.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// SQLiteDB wraps the database/sql handle of a SQLite file.
type SQLiteDB struct {
	DB   *sql.DB
	Path string
}

// NewSQLiteDB tạo instance mới. DB được set khi Connect() được gọi.
func NewSQLiteDB(path string) *SQLiteDB {
	return &SQLiteDB{Path: path}
}

// Connect opens the database file, creating its directory when needed.
func (db *SQLiteDB) Connect(ctx context.Context) error {
	path := strings.TrimSpace(db.Path)
	if path == "" {
		return fmt.Errorf("sqlite path is required")
	}
	path = filepath.Clean(path)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	log.Info().Str("path", path).Msg("[DATABASE] Opening SQLite database...")

	sqlDB, err := sql.Open("sqlite", path+"?"+sqlitePragmas)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite cho phép một writer tại một thời điểm
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("ping sqlite db: %w", err)
	}

	db.DB = sqlDB
	db.Path = path
	return nil
}
