package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagConfig      string
	flagTheme       string
	flagOrientation string
	flagExplain     bool
	flagDryRun      bool
	flagVerbose     bool
)

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neora-installer",
		Short: "Installer progress display",
		Long:  "neora-installer shows installation progress as a row or column of numbered steps, driven by a timer or by the installer's own step plan.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstaller(cmd, args)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to neora.toml (default: next to the binary, then ~/.config/neora)")
	cmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Palette: light, dark or auto (overrides config)")
	cmd.PersistentFlags().StringVar(&flagOrientation, "orientation", "", "Layout: horizontal or vertical (overrides config)")
	cmd.PersistentFlags().BoolVar(&flagExplain, "explain", false, "Show the explain panel on start")
	cmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "In plan mode, describe each step without running it")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Also write log output to stderr")

	cmd.AddCommand(newVersionCmd(version))
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newFrameCmd())

	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print neora-installer version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "neora-installer", version)
		},
	}
}

func Execute(version string) error {
	return newRootCmd(version).Execute()
}
