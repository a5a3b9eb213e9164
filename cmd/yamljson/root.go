package main

import (
	"log/slog"

	"github.com/0xalexb/yamljson"
	"github.com/0xalexb/yamljson/logging"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	logLevel  string
	logFormat string
}

func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	return logging.NewLogger(logging.LoggerConfig{Level: g.logLevel, Format: g.logFormat}, cmd.ErrOrStderr())
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "yamljson",
		Short: "Convert YAML documents to JSON",
		Long: `yamljson converts the first document of a YAML stream into JSON.

Merge keys (<<) are resolved with explicit keys taking priority, scalars
become null, booleans, exact numbers or strings, and anchors are expanded.`,
		Version:       yamljson.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", logging.FormatText, "log format (json, text)")

	root.AddCommand(
		newConvertCmd(flags),
		newWatchCmd(flags),
		newServeCmd(flags),
		newVersionCmd(),
	)

	return root
}
