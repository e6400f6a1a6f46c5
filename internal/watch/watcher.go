// Package watch reports Created, Changed and Deleted events for files
// under a directory, coalesced over a debounce window.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Hidden entries never produce events, matching the tree listing.
var defaultIgnores = []string{
	"**/.*",
	"**/.*/**",
	"**/*~",
	"**/*.swp",
}

type ChangeType int

const (
	Created ChangeType = iota + 1
	Changed
	Deleted
)

func (t ChangeType) String() string {
	switch t {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// Event is one change. Path is absolute.
type Event struct {
	Type ChangeType
	Path string
}

type Config struct {
	// BaseDir is watched recursively. Empty means the working directory.
	BaseDir string

	// Ignore adds doublestar patterns, relative to BaseDir, to the built-in
	// ignores.
	Ignore []string

	// Debounce is the quiet period before OnChange fires. Zero or negative
	// uses defaultDebounce.
	Debounce time.Duration

	// OnChange receives the events of one debounce window, one per path
	// (the last event wins), sorted by path.
	OnChange func(ctx context.Context, events []Event) error

	Logger *log.Logger
}

// Watcher must be Run exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	ignores  []string
	debounce time.Duration
	baseDir  string
	logger   *log.Logger
	started  atomic.Bool
}

func New(cfg Config) (*Watcher, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	for _, pat := range cfg.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid ignore pattern %q", pat)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		debounce: debounce,
		baseDir:  absBase,
		logger:   logger,
	}
	if err := w.addDirectories(); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is cancelled. It returns nil on
// cancellation and an error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]ChangeType)
		timer   *time.Timer
		wg      sync.WaitGroup
	)

	fire := func() {
		defer wg.Done()
		if ctx.Err() != nil {
			return
		}
		mu.Lock()
		events := make([]Event, 0, len(pending))
		for path, typ := range pending {
			events = append(events, Event{Type: typ, Path: path})
		}
		clear(pending)
		mu.Unlock()

		if len(events) == 0 || w.cfg.OnChange == nil {
			return
		}
		slices.SortFunc(events, func(a, b Event) int {
			if a.Path < b.Path {
				return -1
			}
			if a.Path > b.Path {
				return 1
			}
			return 0
		})
		if err := w.cfg.OnChange(ctx, events); err != nil {
			w.logger.Warn("change callback failed", "err", err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		mu.Unlock()
		wg.Wait()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("closing fsnotify watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if w.isIgnored(evt.Name) {
				continue
			}
			typ := w.classify(evt)
			if typ == Created {
				w.maybeAddDir(evt.Name)
			}

			mu.Lock()
			pending[evt.Name] = typ
			if timer == nil || !timer.Stop() {
				wg.Add(1)
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// classify treats writes and attribute changes as Changed. Creates,
// removes and renames are Created when the path exists afterwards and
// Deleted otherwise.
func (w *Watcher) classify(evt fsnotify.Event) ChangeType {
	if evt.Has(fsnotify.Write) || evt.Has(fsnotify.Chmod) {
		return Changed
	}
	if _, err := os.Lstat(evt.Name); err == nil {
		return Created
	}
	return Deleted
}

func (w *Watcher) addDirectories() error {
	err := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "err", walkErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.baseDir && w.isIgnored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk directory tree: %w", err)
	}
	return nil
}

func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("adding new directory", "path", path, "err", err)
	}
}

func (w *Watcher) isIgnored(path string) bool {
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// isFatal reports resource exhaustion (watch or descriptor limits), after
// which the watcher cannot recover.
func isFatal(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
