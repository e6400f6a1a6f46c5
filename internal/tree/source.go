package tree

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"

	"github.com/chriserin/cukenav/internal/db"
	"github.com/chriserin/cukenav/internal/extract"
	"github.com/chriserin/cukenav/internal/fsys"
)

// FS is what the tree needs from the filesystem.
type FS interface {
	ReadDir(path string) ([]fsys.DirEntry, error)
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fsys.FileStat, error)
}

// Source produces the entries of one kind found in a file.
type Source interface {
	Entries(path string, kind extract.Kind) ([]extract.Entry, error)
}

// DiskSource reads and scans the file on every call.
type DiskSource struct {
	FS FS
}

func (s DiskSource) Entries(path string, kind extract.Kind) ([]extract.Entry, error) {
	content, err := s.FS.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return extract.Extract(string(content), kind), nil
}

// CachedSource keeps extraction results in an EntryCache. A record is
// reused while the file's modification time and size are unchanged. When
// they move, the file is read again and only re-scanned if its content hash
// differs.
type CachedSource struct {
	FS     FS
	Cache  *db.EntryCache
	Logger *log.Logger
}

func (s CachedSource) Entries(path string, kind extract.Kind) ([]extract.Entry, error) {
	logger := orDiscard(s.Logger)

	st, err := s.FS.Stat(path)
	if err != nil {
		return nil, err
	}
	stamp := db.Stamp{ModTime: st.ModTime.UnixNano(), Size: st.Size}

	rec, ok, err := s.Cache.Get(path, kind)
	if err != nil {
		return nil, err
	}
	if ok && rec.Stamp == stamp {
		logger.Debug("cache hit", "path", path, "kind", kind)
		return rec.Entries, nil
	}

	content, err := s.FS.ReadFile(path)
	if err != nil {
		return nil, err
	}
	hash := strconv.FormatUint(xxhash.Sum64(content), 16)

	if ok && rec.Hash == hash {
		logger.Debug("cache stamp moved, content unchanged", "path", path, "kind", kind)
		if err := s.Cache.Touch(path, kind, stamp); err != nil {
			return nil, err
		}
		return rec.Entries, nil
	}

	logger.Debug("cache miss", "path", path, "kind", kind)
	entries := extract.Extract(string(content), kind)
	if err := s.Cache.Put(path, kind, db.Record{Stamp: stamp, Hash: hash, Entries: entries}); err != nil {
		return nil, err
	}
	return entries, nil
}
