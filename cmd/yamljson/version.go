package main

import (
	"fmt"

	"github.com/0xalexb/yamljson"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), yamljson.BuildInfo())

			return err //nolint:wrapcheck
		},
	}
}
