package db

import (
	"database/sql"
	"fmt"
)

// All contains the ordered list of migrations to apply.
var All = []string{
	`CREATE TABLE files (
		id           INTEGER PRIMARY KEY,
		file_path    TEXT NOT NULL,
		kind         INTEGER NOT NULL,
		mod_time     INTEGER NOT NULL,
		size         INTEGER NOT NULL,
		content_hash TEXT NOT NULL,
		created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
		updated_at   DATETIME NOT NULL DEFAULT (datetime('now')),
		UNIQUE (file_path, kind)
	)`,
	`CREATE TABLE entries (
		id       INTEGER PRIMARY KEY,
		file_id  INTEGER NOT NULL REFERENCES files(id),
		position INTEGER NOT NULL,
		label    TEXT NOT NULL
	)`,
	`CREATE INDEX entries_file_id ON entries (file_id, position)`,
}

// Migrate brings the schema up to date, one transaction per migration.
func Migrate(sqlDB *sql.DB) error {
	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}
	if _, err := sqlDB.Exec(`INSERT INTO schema_version (version)
		SELECT 0 WHERE NOT EXISTS (SELECT 1 FROM schema_version)`); err != nil {
		return fmt.Errorf("initializing schema version: %w", err)
	}

	var current int
	if err := sqlDB.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(All); i++ {
		if err := apply(sqlDB, i); err != nil {
			return err
		}
	}
	return nil
}

func apply(sqlDB *sql.DB, i int) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", i+1, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(All[i]); err != nil {
		return fmt.Errorf("migration %d failed: %w", i+1, err)
	}
	if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
		return fmt.Errorf("updating schema version to %d: %w", i+1, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", i+1, err)
	}
	return nil
}
