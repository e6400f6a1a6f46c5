// Package db holds the sqlite-backed cache of extracted entries.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Memory opens a private in-memory database when passed to Open.
const Memory = ":memory:"

// Open opens (creating if needed) the sqlite database at path and applies
// pending migrations. An empty path or Memory gives an in-memory database.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = Memory
	}
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if path == Memory {
		// every pooled connection would otherwise get its own empty database
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}
