// Package tree expands navigation tree nodes on demand.
package tree

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/chriserin/cukenav/internal/extract"
	"github.com/chriserin/cukenav/internal/fsys"
	"github.com/chriserin/cukenav/internal/node"
	"github.com/chriserin/cukenav/internal/roots"
)

// Composer computes the children of a node for one tree. Nothing is kept
// between calls: every expansion goes back to the filesystem (or to a
// Source that validates against it).
type Composer struct {
	kind      roots.TreeKind
	workspace roots.Workspace
	fs        FS
	source    Source
	logger    *log.Logger
	signal    Signal
}

type Option func(*Composer)

// WithSource replaces the default DiskSource.
func WithSource(s Source) Option {
	return func(c *Composer) { c.source = s }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

func NewComposer(kind roots.TreeKind, ws roots.Workspace, fs FS, opts ...Option) *Composer {
	c := &Composer{kind: kind, workspace: ws, fs: fs}
	for _, opt := range opts {
		opt(c)
	}
	if c.source == nil {
		c.source = DiskSource{FS: fs}
	}
	c.logger = orDiscard(c.logger)
	return c
}

func (c *Composer) Kind() roots.TreeKind {
	return c.kind
}

// Root is the directory this tree starts from; ok is false when no project
// folder is open.
func (c *Composer) Root() (string, bool) {
	return c.workspace.RootFor(c.kind)
}

// Roots lists the top level of the tree. It is empty, not an error, when no
// project folder is open.
func (c *Composer) Roots() ([]node.Node, error) {
	root, ok := c.Root()
	if !ok {
		c.logger.Debug("no project folder open", "tree", c.kind)
		return []node.Node{}, nil
	}
	return c.listDir(root)
}

// Children expands n. A nil n means the root of the tree.
func (c *Composer) Children(n *node.Node) ([]node.Node, error) {
	if n == nil {
		return c.Roots()
	}

	var (
		children []node.Node
		err      error
	)
	switch n.Kind {
	case node.Directory:
		children, err = c.listDir(n.File)
	case node.RegularFile:
		children, err = c.fileChildren(n.File)
	case node.Feature:
		children, err = c.featureChildren(*n)
	default:
		children = []node.Node{}
	}
	if err != nil {
		return nil, err
	}
	c.logger.Debug("expanded", "node", n.Locator(), "kind", n.Kind, "children", len(children))
	return children, nil
}

// fileKind is the entry kind a file in this tree is scanned for.
func (c *Composer) fileKind() extract.Kind {
	if c.kind == roots.StepDefs {
		return extract.StepDef
	}
	return extract.Feature
}

func (c *Composer) fileChildren(path string) ([]node.Node, error) {
	entries, err := c.source.Entries(path, c.fileKind())
	if err != nil {
		return nil, err
	}
	children := make([]node.Node, 0, len(entries))
	for _, e := range entries {
		children = append(children, node.FromEntry(path, "", e))
	}
	return children, nil
}

// featureChildren lists every Scenario in the Feature's file. Files are
// assumed to hold a single Feature, so the whole file is scanned.
func (c *Composer) featureChildren(feature node.Node) ([]node.Node, error) {
	entries, err := c.source.Entries(feature.File, extract.Scenario)
	if err != nil {
		return nil, err
	}
	children := make([]node.Node, 0, len(entries))
	for _, e := range entries {
		children = append(children, node.FromEntry(feature.File, feature.Label, e))
	}
	return children, nil
}

func (c *Composer) listDir(dir string) ([]node.Node, error) {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	visible := make([]fsys.DirEntry, 0, len(entries))
	for _, e := range entries {
		if fsys.IsHidden(e.Name) {
			continue
		}
		if e.Type != fsys.Directory && e.Type != fsys.File {
			c.logger.Debug("skipping entry", "path", filepath.Join(dir, e.Name), "type", e.Type)
			continue
		}
		visible = append(visible, e)
	}
	SortEntries(visible)

	children := make([]node.Node, 0, len(visible))
	for _, e := range visible {
		path := filepath.Join(dir, e.Name)
		if e.Type == fsys.Directory {
			children = append(children, node.NewDirectory(path))
		} else {
			children = append(children, node.NewFile(path))
		}
	}
	return children, nil
}

// SortEntries puts directories first, then orders each group by name using
// locale-aware collation. Names that collate equal fall back to byte order
// so the result is stable.
func SortEntries(entries []fsys.DirEntry) {
	col := collate.New(language.Und)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if dirA, dirB := a.Type == fsys.Directory, b.Type == fsys.Directory; dirA != dirB {
			return dirA
		}
		if r := col.CompareString(a.Name, b.Name); r != 0 {
			return r < 0
		}
		return a.Name < b.Name
	})
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
