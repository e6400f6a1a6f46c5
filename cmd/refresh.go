package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/cukenav/internal/ui"
)

var refreshCmd = &cobra.Command{
	Use:       "refresh features|steps",
	Short:     "Drop cached entries for a tree and show it again",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"features", "steps"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRefresh(cmd.OutOrStdout(), globals, args[0])
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func RunRefresh(w io.Writer, g Globals, kindArg string) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}
	a, err := openApp(g, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	c := a.composer(kind)
	root, ok := c.Root()
	if ok {
		if err := a.cache.InvalidateUnder(root); err != nil {
			return fmt.Errorf("invalidating %s: %w", root, err)
		}
	}

	var renderErr error
	unsubscribe := c.Subscribe(func() {
		ui.RefreshLine(w, kind.String(), root)
		renderErr = ui.RenderTree(w, c, ui.TreeOptions{})
	})
	defer unsubscribe()

	c.Refresh()
	return renderErr
}
