package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/cukenav/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunConfigShow(cmd.OutOrStdout(), globals)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func RunConfigShow(w io.Writer, g Globals) error {
	dir, err := projectDir(g.Dir)
	if err != nil {
		return err
	}
	cfg, path, err := config.Load(config.Options{Dir: dir, File: g.ConfigFile})
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(w, "# %s\n", path)
	} else {
		fmt.Fprintln(w, "# defaults")
	}
	return cfg.Write(w)
}
