package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/cukenav/internal/ui"
)

var treeOpts ui.TreeOptions

var treeCmd = &cobra.Command{
	Use:   "tree features|steps",
	Short: "Show the feature or step definition tree",
	Example: `  cukenav tree features
  cukenav tree steps --depth 2
  cukenav tree features --locators`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"features", "steps"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTree(cmd.OutOrStdout(), globals, args[0], treeOpts)
	},
}

func init() {
	treeCmd.Flags().IntVar(&treeOpts.Depth, "depth", 0, "Maximum depth (0 expands everything)")
	treeCmd.Flags().BoolVar(&treeOpts.Locators, "locators", false, "Show each node's locator")
	rootCmd.AddCommand(treeCmd)
}

func RunTree(w io.Writer, g Globals, kindArg string, opts ui.TreeOptions) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}
	a, err := openApp(g, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	return ui.RenderTree(w, a.composer(kind), opts)
}
