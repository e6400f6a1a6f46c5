// Package node defines the addressable elements of the navigation tree.
package node

import (
	"path/filepath"

	"github.com/chriserin/cukenav/internal/extract"
)

// Kind tags which variant a Node is.
type Kind int

const (
	Directory Kind = iota + 1
	RegularFile
	Feature
	Scenario
	StepDef
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case RegularFile:
		return "file"
	case Feature:
		return "feature"
	case Scenario:
		return "scenario"
	case StepDef:
		return "stepdef"
	}
	return "unknown"
}

// Node is an element of the tree. Directory and RegularFile nodes name a
// real filesystem entry in File. Content nodes (Feature, Scenario, StepDef)
// keep the real owning file in File and carry their labels separately:
// Owner is the Feature label a Scenario was listed under, Label is the
// matched line itself.
//
// Nodes are values; nothing mutates them after construction.
type Node struct {
	Kind  Kind
	File  string
	Owner string
	Label string
}

func NewDirectory(path string) Node {
	return Node{Kind: Directory, File: path}
}

func NewFile(path string) Node {
	return Node{Kind: RegularFile, File: path}
}

func NewFeature(file, label string) Node {
	return Node{Kind: Feature, File: file, Label: label}
}

func NewScenario(file, feature, label string) Node {
	return Node{Kind: Scenario, File: file, Owner: feature, Label: label}
}

func NewStepDef(file, label string) Node {
	return Node{Kind: StepDef, File: file, Label: label}
}

// FromEntry wraps an extracted entry found in file. owner is only used for
// Scenario entries.
func FromEntry(file, owner string, e extract.Entry) Node {
	switch e.Kind {
	case extract.Feature:
		return NewFeature(file, e.Label)
	case extract.Scenario:
		return NewScenario(file, owner, e.Label)
	default:
		return NewStepDef(file, e.Label)
	}
}

// IsContent reports whether the node lives inside a file rather than on
// the filesystem.
func (n Node) IsContent() bool {
	return n.Kind == Feature || n.Kind == Scenario || n.Kind == StepDef
}

// Name is the text shown for the node: the base name for filesystem nodes
// and the label for content nodes.
func (n Node) Name() string {
	if n.IsContent() {
		return n.Label
	}
	return filepath.Base(n.File)
}

// Locator renders the node as a path-shaped string: the real path for
// filesystem nodes, with the synthetic label segments appended for content
// nodes. It is for display only; the structured fields are authoritative.
func (n Node) Locator() string {
	switch n.Kind {
	case Scenario:
		return n.File + string(filepath.Separator) + n.Owner + string(filepath.Separator) + n.Label
	case Feature, StepDef:
		return n.File + string(filepath.Separator) + n.Label
	}
	return n.File
}
