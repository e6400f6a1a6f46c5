package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version is set via -ldflags.
var Version = "dev"

var globals Globals

var rootCmd = &cobra.Command{
	Use:   "cukenav",
	Short: "Navigate Cucumber features and step definitions",
	Long: `cukenav shows the features and step definitions of a Cucumber project
as two lazily expanded trees and opens any entry at its line.

Features are read from features/testcase and step definitions from
features/step_definitions below the project folder.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globals.Dir, "dir", "", "project folder (default is the current directory)")
	rootCmd.PersistentFlags().StringVar(&globals.ConfigFile, "config", "", "config file (default is .cukenav.toml in the project folder)")
	rootCmd.PersistentFlags().StringVar(&globals.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "log at debug level")
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
