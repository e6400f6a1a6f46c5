// Package locate maps a tree node back to the line it came from.
package locate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/chriserin/cukenav/internal/extract"
	"github.com/chriserin/cukenav/internal/fsys"
	"github.com/chriserin/cukenav/internal/node"
)

var ErrLocationNotFound = errors.New("location not found")

// Location is a line in a file. Line, Start and End are 0-based; Start and
// End are byte offsets bounding the selected text on that line.
type Location struct {
	Path  string
	Line  int
	Start int
	End   int
}

// Reader is the file access the resolver needs.
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

type Resolver struct {
	fs Reader
}

func NewResolver(fs Reader) *Resolver {
	return &Resolver{fs: fs}
}

// Resolve re-reads the node's file and returns the first line, scanning
// top to bottom, that contains the node's label. Scenario, Feature and
// StepDef nodes match on their own label. A RegularFile resolves to the
// start of the file.
func (r *Resolver) Resolve(n node.Node) (Location, error) {
	if n.Kind == node.Directory {
		return Location{}, fmt.Errorf("opening %s: %w", n.File, fsys.ErrIsADirectory)
	}

	content, err := r.fs.ReadFile(n.File)
	if err != nil {
		return Location{}, err
	}
	if n.Kind == node.RegularFile {
		return Location{Path: n.File}, nil
	}

	for i, line := range extract.Lines(string(content)) {
		if strings.Contains(line, n.Label) {
			return Location{Path: n.File, Line: i, End: len(line)}, nil
		}
	}
	return Location{}, fmt.Errorf("%w: %q in %s", ErrLocationNotFound, n.Label, n.File)
}

// Suggest returns up to limit entries of the node's kind from its file
// whose text is close to the node's label, best first.
func (r *Resolver) Suggest(n node.Node, limit int) ([]string, error) {
	var kind extract.Kind
	switch n.Kind {
	case node.Feature:
		kind = extract.Feature
	case node.Scenario:
		kind = extract.Scenario
	case node.StepDef:
		kind = extract.StepDef
	default:
		return nil, nil
	}

	content, err := r.fs.ReadFile(n.File)
	if err != nil {
		return nil, err
	}

	type scored struct {
		label string
		score float32
	}
	want := strings.TrimSpace(n.Label)
	var candidates []scored
	for _, e := range extract.Extract(string(content), kind) {
		label := strings.TrimSpace(e.Label)
		score, err := edlib.StringsSimilarity(want, label, edlib.Levenshtein)
		if err != nil {
			return nil, fmt.Errorf("scoring %q: %w", label, err)
		}
		if score >= minSimilarity {
			candidates = append(candidates, scored{label, score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var out []string
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		out = append(out, c.label)
	}
	return out, nil
}

const minSimilarity = 0.7
