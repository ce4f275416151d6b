package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aimock/aimock-api/internal/config"
	"github.com/aimock/aimock-api/internal/platform/logger"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "aimockctl",
		Short:         "Developer tooling for the AI mock interview API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"config file (default: ./config.yaml when present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output and debug logging")

	cmd.AddCommand(
		newNormalizeCmd(opts),
		newGenerateCmd(opts),
		newMigrateCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

// logger writes to w at debug level with --verbose and at warn level otherwise.
func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return logger.New(w, level)
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadFile(o.configFile)
}
