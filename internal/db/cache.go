package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/chriserin/cukenav/internal/extract"
)

// Stamp identifies a version of a file on disk without reading it.
type Stamp struct {
	ModTime int64 // unix nanoseconds
	Size    int64
}

// Record is what the cache remembers about one (file, kind) pair.
type Record struct {
	Stamp   Stamp
	Hash    string
	Entries []extract.Entry
}

// EntryCache stores extraction results keyed by file path and entry kind.
type EntryCache struct {
	db *sql.DB
}

func NewEntryCache(sqlDB *sql.DB) *EntryCache {
	return &EntryCache{db: sqlDB}
}

// Get returns the record for path and kind; ok is false on a miss.
func (c *EntryCache) Get(path string, kind extract.Kind) (rec Record, ok bool, err error) {
	var fileID int64
	err = c.db.QueryRow(`
		SELECT id, mod_time, size, content_hash
		FROM files
		WHERE file_path = ? AND kind = ?
	`, path, int(kind)).Scan(&fileID, &rec.Stamp.ModTime, &rec.Stamp.Size, &rec.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("querying %s: %w", path, err)
	}

	rows, err := c.db.Query(`SELECT label FROM entries WHERE file_id = ? ORDER BY position`, fileID)
	if err != nil {
		return Record{}, false, fmt.Errorf("querying entries for %s: %w", path, err)
	}
	defer rows.Close()

	rec.Entries = []extract.Entry{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return Record{}, false, fmt.Errorf("scanning entry: %w", err)
		}
		rec.Entries = append(rec.Entries, extract.Entry{Label: label, Kind: kind})
	}
	if err := rows.Err(); err != nil {
		return Record{}, false, fmt.Errorf("iterating entries: %w", err)
	}
	return rec, true, nil
}

// Put replaces whatever is stored for path and kind.
func (c *EntryCache) Put(path string, kind extract.Kind, rec Record) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning cache write: %w", err)
	}

	if err := deleteFiles(tx, `file_path = ? AND kind = ?`, path, int(kind)); err != nil {
		tx.Rollback()
		return err
	}

	res, err := tx.Exec(`
		INSERT INTO files (file_path, kind, mod_time, size, content_hash)
		VALUES (?, ?, ?, ?, ?)
	`, path, int(kind), rec.Stamp.ModTime, rec.Stamp.Size, rec.Hash)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("inserting %s: %w", path, err)
	}
	fileID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("reading file id: %w", err)
	}

	for i, e := range rec.Entries {
		if _, err := tx.Exec(`INSERT INTO entries (file_id, position, label) VALUES (?, ?, ?)`, fileID, i, e.Label); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache write: %w", err)
	}
	return nil
}

// Touch records a new stamp for an unchanged file.
func (c *EntryCache) Touch(path string, kind extract.Kind, stamp Stamp) error {
	_, err := c.db.Exec(`
		UPDATE files SET mod_time = ?, size = ?, updated_at = datetime('now')
		WHERE file_path = ? AND kind = ?
	`, stamp.ModTime, stamp.Size, path, int(kind))
	if err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	return nil
}

// Invalidate forgets every kind cached for path.
func (c *EntryCache) Invalidate(path string) error {
	return c.inTx(func(tx *sql.Tx) error {
		return deleteFiles(tx, `file_path = ?`, path)
	})
}

// InvalidateUnder forgets dir itself and every path below it.
func (c *EntryCache) InvalidateUnder(dir string) error {
	prefix := dir + string(os.PathSeparator)
	return c.inTx(func(tx *sql.Tx) error {
		return deleteFiles(tx, `file_path = ? OR substr(file_path, 1, length(?)) = ?`, dir, prefix, prefix)
	})
}

// Len reports how many (file, kind) records are cached.
func (c *EntryCache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cached files: %w", err)
	}
	return n, nil
}

func (c *EntryCache) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning cache write: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache write: %w", err)
	}
	return nil
}

func deleteFiles(tx *sql.Tx, where string, args ...any) error {
	if _, err := tx.Exec(`DELETE FROM entries WHERE file_id IN (SELECT id FROM files WHERE `+where+`)`, args...); err != nil {
		return fmt.Errorf("deleting cached entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM files WHERE `+where, args...); err != nil {
		return fmt.Errorf("deleting cached files: %w", err)
	}
	return nil
}
