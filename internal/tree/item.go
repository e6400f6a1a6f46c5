package tree

import (
	"github.com/chriserin/cukenav/internal/node"
	"github.com/chriserin/cukenav/internal/roots"
)

// Commands bound to selecting a node.
const (
	CmdOpenFeatureFile = "open-feature-file"
	CmdOpenFeature     = "open-feature"
	CmdOpenScenario    = "open-scenario"
	CmdOpenStepDefFile = "open-stepdef-file"
	CmdOpenStepDef     = "open-stepdef"
)

// Item is how a node presents itself in a tree view.
type Item struct {
	Node        node.Node
	Label       string
	Collapsible bool
	Context     string // "", "file", "feature", "scenario" or "stepdef"
	Command     string // empty when selecting the node does nothing
}

// ItemFor describes n as it appears in the tree of the given kind.
func ItemFor(kind roots.TreeKind, n node.Node) Item {
	it := Item{
		Node:        n,
		Label:       n.Name(),
		Collapsible: n.Kind != node.Scenario && n.Kind != node.StepDef,
	}
	switch n.Kind {
	case node.RegularFile:
		it.Context = "file"
		it.Command = CmdOpenFeatureFile
		if kind == roots.StepDefs {
			it.Command = CmdOpenStepDefFile
		}
	case node.Feature:
		it.Context = "feature"
		it.Command = CmdOpenFeature
	case node.Scenario:
		it.Context = "scenario"
		it.Command = CmdOpenScenario
	case node.StepDef:
		it.Context = "stepdef"
		it.Command = CmdOpenStepDef
	}
	return it
}
