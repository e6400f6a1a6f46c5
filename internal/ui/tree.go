package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/chriserin/cukenav/internal/node"
	"github.com/chriserin/cukenav/internal/roots"
	navtree "github.com/chriserin/cukenav/internal/tree"
)

// Expander is the part of a tree.Composer the renderer needs.
type Expander interface {
	Kind() roots.TreeKind
	Children(n *node.Node) ([]node.Node, error)
}

type TreeOptions struct {
	// Depth limits how many levels are expanded; zero or less means all.
	Depth int
	// Locators appends each node's locator after its label.
	Locators bool
}

// RenderTree expands the tree from its roots and writes it to w.
func RenderTree(w io.Writer, e Expander, opts TreeOptions) error {
	children, err := e.Children(nil)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		fmt.Fprintln(w, emptyStyle.Render("no "+e.Kind().String()+" found"))
		return nil
	}

	t := tree.New().
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumStyle)
	if err := addChildren(t, e, children, 1, opts); err != nil {
		return err
	}
	fmt.Fprintln(w, t.String())
	return nil
}

func addChildren(t *tree.Tree, e Expander, children []node.Node, depth int, opts TreeOptions) error {
	for _, n := range children {
		item := navtree.ItemFor(e.Kind(), n)
		label := itemLabel(item, opts.Locators)
		if !item.Collapsible || (opts.Depth > 0 && depth >= opts.Depth) {
			t.Child(label)
			continue
		}

		grand, err := e.Children(&n)
		if err != nil {
			return fmt.Errorf("expanding %s: %w", n.Locator(), err)
		}
		if len(grand) == 0 {
			t.Child(label)
			continue
		}
		sub := tree.Root(label).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(enumStyle)
		if err := addChildren(sub, e, grand, depth+1, opts); err != nil {
			return err
		}
		t.Child(sub)
	}
	return nil
}

func itemLabel(item navtree.Item, locators bool) string {
	label := strings.TrimSpace(item.Label)
	var style lipgloss.Style
	switch item.Node.Kind {
	case node.Directory:
		style = dirStyle
	case node.Feature:
		style = featureStyle
	case node.StepDef:
		style = stepDefStyle
	default:
		style = lipgloss.NewStyle()
	}
	out := style.Render(label)
	if locators {
		out += "  " + locatorStyle.Render(item.Node.Locator())
	}
	return out
}
