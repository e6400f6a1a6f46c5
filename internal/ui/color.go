package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/cukenav/internal/locate"
	"github.com/chriserin/cukenav/internal/watch"
)

var (
	dirStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	featureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	stepDefStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	locatorStyle  = lipgloss.NewStyle().Faint(true)
	enumStyle     = lipgloss.NewStyle().Faint(true)
	createdStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	changedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	deletedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Faint(true)
	refreshStyle  = lipgloss.NewStyle().Faint(true)
	locationStyle = lipgloss.NewStyle().Bold(true)
)

// ChangeLine prints one watcher event, with the path shown relative to root
// when possible.
func ChangeLine(w io.Writer, root string, ev watch.Event) {
	style := changedStyle
	switch ev.Type {
	case watch.Created:
		style = createdStyle
	case watch.Deleted:
		style = deletedStyle
	}
	fmt.Fprintln(w, style.Render(fmt.Sprintf("%-7s", ev.Type))+"  "+relTo(root, ev.Path))
}

func RefreshLine(w io.Writer, tree string, root string) {
	fmt.Fprintln(w, refreshStyle.Render("refreshed "+tree)+"  "+root)
}

// NotFoundWarning is the soft notification shown when a label no longer
// matches any line of its file.
func NotFoundWarning(w io.Writer, label, file string, suggestions []string) {
	fmt.Fprintln(w, warnStyle.Render("warning")+"  "+fmt.Sprintf("%q not found in %s", strings.TrimSpace(label), file))
	for _, s := range suggestions {
		fmt.Fprintln(w, "         did you mean "+fmt.Sprintf("%q", s)+"?")
	}
}

func OpenedLine(w io.Writer, loc locate.Location) {
	fmt.Fprintln(w, "opened  "+locationStyle.Render(fmt.Sprintf("%s:%d", loc.Path, loc.Line+1)))
}

func relTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
