package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	filefetcher "github.com/0xalexb/yamljson/config/fetcher/file"
	"github.com/0xalexb/yamljson/convert"
	"github.com/0xalexb/yamljson/document"
	"github.com/0xalexb/yamljson/value"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

const defaultMaxInputBytes = 64 << 20

type convertOptions struct {
	parser   string
	indent   int
	dump     bool
	maxBytes int64
}

func newConvertCmd(flags *globalFlags) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a YAML file (or stdin) to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}

			data, err := readInput(cmd.InOrStdin(), path, opts.maxBytes)
			if err != nil {
				return err
			}

			out, err := opts.run(cmd.ErrOrStderr(), data)
			if err != nil {
				flags.logger(cmd).Debug("conversion failed", slog.String("input", path), slog.String("kind", convert.KindOf(err)))

				return err
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err //nolint:wrapcheck
		},
	}

	cmd.Flags().StringVarP(&opts.parser, "parser", "p", document.DefaultBackend, "YAML parser backend (yamlv3, goccy)")
	cmd.Flags().IntVarP(&opts.indent, "indent", "i", 0, "indent JSON output by this many spaces")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "dump the merge-resolved document tree to stderr")
	cmd.Flags().Int64Var(&opts.maxBytes, "max-bytes", defaultMaxInputBytes, "reject inputs larger than this")

	return cmd
}

func readInput(stdin io.Reader, path string, maxBytes int64) ([]byte, error) {
	var (
		fetcher *filefetcher.Fetcher
		err     error
	)

	if path == "-" {
		fetcher, err = filefetcher.NewReaderFetcher("stdin", stdin, filefetcher.WithMaxBytes(maxBytes))
	} else {
		fetcher, err = filefetcher.NewFetcher(path, filefetcher.WithMaxBytes(maxBytes))()
	}

	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return fetcher.Fetch() //nolint:wrapcheck
}

// run converts data and renders the JSON output followed by a newline.
func (o *convertOptions) run(dumpTo io.Writer, data []byte) ([]byte, error) {
	loader, err := document.LoaderByName(o.parser)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	doc, err := loader(string(data))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	result, err := convert.Convert(doc, doc.Root())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if o.dump {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		dumper.Fdump(dumpTo, doc)
	}

	return render(result, o.indent)
}

func render(result value.Value, indent int) ([]byte, error) {
	var (
		out []byte
		err error
	)

	if indent > 0 {
		out, err = json.MarshalIndent(result, "", strings.Repeat(" ", indent))
	} else {
		out, err = json.Marshal(result)
	}

	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}

	return append(out, '\n'), nil
}
