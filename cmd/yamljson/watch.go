package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0xalexb/yamljson/document"
	"github.com/0xalexb/yamljson/watcher"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	opts := &convertOptions{}

	var (
		debounce time.Duration
		changes  string
		colored  bool
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Convert a YAML file again on every change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validChanges(changes)
			if err != nil {
				return err
			}

			// A line diff of single-line JSON is the whole document.
			if changes == changesDiff && opts.indent == 0 {
				opts.indent = 2
			}

			logger := flags.logger(cmd)

			w, err := watcher.New(watcher.Config{Path: args[0], Debounce: debounce}, logger)
			if err != nil {
				return err //nolint:wrapcheck
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			writer := &changeWriter{mode: changes, colors: newPalette(colored), out: cmd.OutOrStdout()}

			return watchFile(ctx, w, opts, writer, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.parser, "parser", "p", document.DefaultBackend, "YAML parser backend (yamlv3, goccy)")
	cmd.Flags().IntVarP(&opts.indent, "indent", "i", 0, "indent JSON output by this many spaces")
	cmd.Flags().Int64Var(&opts.maxBytes, "max-bytes", defaultMaxInputBytes, "reject inputs larger than this")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "quiet period before converting")
	cmd.Flags().StringVar(&changes, "changes", changesFull, "print later conversions as full documents, merge patches or line diffs (full, patch, diff)")
	cmd.Flags().BoolVar(&colored, "color", isTerminal(os.Stdout), "color diffs and errors")

	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// watchFile converts once, then on every change. Conversion errors are
// reported on errOut and do not end the watch.
func watchFile(ctx context.Context, w *watcher.Watcher, opts *convertOptions, out *changeWriter, errOut io.Writer) error {
	once := func() error {
		data, err := readInput(nil, w.Path(), opts.maxBytes)
		if err != nil {
			return err
		}

		rendered, err := opts.run(errOut, data)
		if err != nil {
			_, _ = out.colors.err.Fprintf(errOut, "%s: %v\n", w.Path(), err)

			return nil
		}

		return out.write(rendered)
	}

	err := once()
	if err != nil {
		return err
	}

	return w.Watch(ctx, once) //nolint:wrapcheck
}
