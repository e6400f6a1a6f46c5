package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/cukenav/internal/editor"
	"github.com/chriserin/cukenav/internal/locate"
	"github.com/chriserin/cukenav/internal/node"
	"github.com/chriserin/cukenav/internal/ui"
)

const suggestionLimit = 3

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a file, feature, scenario or step definition in the editor",
	Long: `Open resolves an entry to the first line of its file that contains the
entry's label and focuses it in the editor.

The editor is editor.command from the config, then $VISUAL or $EDITOR.
Without one the location is printed as path:line:column.`,
}

var openFeatureFileCmd = &cobra.Command{
	Use:   "feature-file <file>",
	Short: "Open a feature file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunOpen(cmd.OutOrStdout(), globals, func(a *app) (node.Node, error) {
			return node.NewFile(a.path(args[0])), nil
		})
	},
}

var openFeatureCmd = &cobra.Command{
	Use:   "feature <file> <feature-label>",
	Short: "Open a feature at its line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunOpen(cmd.OutOrStdout(), globals, func(a *app) (node.Node, error) {
			if err := requireLabel("feature label", args[1]); err != nil {
				return node.Node{}, err
			}
			return node.NewFeature(a.path(args[0]), args[1]), nil
		})
	},
}

var openScenarioCmd = &cobra.Command{
	Use:   "scenario <file> <feature-label> <scenario-label>",
	Short: "Open a scenario at its line",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunOpen(cmd.OutOrStdout(), globals, func(a *app) (node.Node, error) {
			if err := requireLabel("feature label", args[1]); err != nil {
				return node.Node{}, err
			}
			if err := requireLabel("scenario label", args[2]); err != nil {
				return node.Node{}, err
			}
			return node.NewScenario(a.path(args[0]), args[1], args[2]), nil
		})
	},
}

var openStepDefFileCmd = &cobra.Command{
	Use:   "stepdef-file <file>",
	Short: "Open a step definition file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunOpen(cmd.OutOrStdout(), globals, func(a *app) (node.Node, error) {
			return node.NewFile(a.path(args[0])), nil
		})
	},
}

var openStepDefCmd = &cobra.Command{
	Use:   "stepdef <file> <label>",
	Short: "Open a step definition at its line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunOpen(cmd.OutOrStdout(), globals, func(a *app) (node.Node, error) {
			if err := requireLabel("step definition label", args[1]); err != nil {
				return node.Node{}, err
			}
			return node.NewStepDef(a.path(args[0]), args[1]), nil
		})
	},
}

func init() {
	openCmd.AddCommand(openFeatureFileCmd, openFeatureCmd, openScenarioCmd, openStepDefFileCmd, openStepDefCmd)
	rootCmd.AddCommand(openCmd)
}

// RunOpen resolves the node built by target and focuses it. A label that no
// longer matches any line is reported as a warning with suggestions, not as
// an error.
func RunOpen(w io.Writer, g Globals, target func(a *app) (node.Node, error)) error {
	a, err := openApp(g, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := target(a)
	if err != nil {
		return err
	}

	focuser := editor.New(a.cfg.Editor.Command, os.Getenv, w)
	resolver := locate.NewResolver(a.fs)

	loc, err := resolver.Open(n, focuser)
	if errors.Is(err, locate.ErrLocationNotFound) {
		suggestions, serr := resolver.Suggest(n, suggestionLimit)
		if serr != nil {
			a.logger.Debug("no suggestions", "file", n.File, "err", serr)
		}
		ui.NotFoundWarning(w, n.Label, n.File, suggestions)
		return nil
	}
	if err != nil {
		return err
	}

	if _, printed := focuser.(editor.Printer); !printed {
		ui.OpenedLine(w, loc)
	}
	a.logger.Debug("opened", "node", n.Locator(), "line", loc.Line)
	return nil
}
