package main

import (
	"fmt"

	"github.com/philipparndt/gomassing/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "massing %s\n", version.GetFullVersion())
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n  built:  %s\n", version.GitCommit, version.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
