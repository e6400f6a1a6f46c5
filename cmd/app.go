package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chriserin/cukenav/internal/config"
	"github.com/chriserin/cukenav/internal/db"
	"github.com/chriserin/cukenav/internal/fsys"
	"github.com/chriserin/cukenav/internal/roots"
	"github.com/chriserin/cukenav/internal/tree"
)

// Globals holds the persistent flags every command shares.
type Globals struct {
	Dir        string
	ConfigFile string
	LogLevel   string
	Verbose    bool
}

// app is what a command runs against: the loaded config, a logger and the
// entry cache.
type app struct {
	dir    string
	cfg    config.Config
	logger *log.Logger
	sqlDB  *sql.DB
	cache  *db.EntryCache
	fs     fsys.Disk
}

func openApp(g Globals, logOut io.Writer) (*app, error) {
	dir, err := projectDir(g.Dir)
	if err != nil {
		return nil, err
	}

	cfg, cfgPath, err := config.Load(config.Options{Dir: dir, File: g.ConfigFile})
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	if g.Verbose {
		level = "debug"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(logOut, log.Options{
		Prefix: "cukenav",
		Level:  lvl,
	})
	if cfgPath != "" {
		logger.Debug("config loaded", "file", cfgPath)
	}

	sqlDB, err := db.Open(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("opening entry cache: %w", err)
	}

	return &app{
		dir:    dir,
		cfg:    cfg,
		logger: logger,
		sqlDB:  sqlDB,
		cache:  db.NewEntryCache(sqlDB),
	}, nil
}

func (a *app) Close() error {
	return a.sqlDB.Close()
}

func (a *app) composer(kind roots.TreeKind) *tree.Composer {
	return tree.NewComposer(kind, a.cfg.RootWorkspace(), a.fs,
		tree.WithSource(tree.CachedSource{FS: a.fs, Cache: a.cache, Logger: a.logger}),
		tree.WithLogger(a.logger),
	)
}

// path anchors a user-supplied file argument at the project folder.
func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(a.dir, p)
}

func projectDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}

func parseKind(s string) (roots.TreeKind, error) {
	kind, ok := roots.ParseTreeKind(s)
	if !ok {
		return 0, fmt.Errorf("unknown tree %q: want features or steps", s)
	}
	return kind, nil
}

func requireLabel(name, label string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	return nil
}
