package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gomassing/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "massing",
	Short: "Headless driver for the house massing editor",
	Long: `massing runs the house massing editor without a window.
It replays recorded gesture scripts against a fresh house and reports the
resulting floors, height, width and length.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(logOpts)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logOpts.level, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&logOpts.development, "dev", false, "human readable development logging")
	flags.StringVar(&logOpts.file, "log-file", "", "also write JSON logs to this file, rotated")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
