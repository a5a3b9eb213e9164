package main

import (
	"github.com/0xalexb/yamljson"
	"github.com/0xalexb/yamljson/config"

	"github.com/spf13/cobra"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		configPath string
		listen     string
		parser     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve YAML to JSON conversion over HTTP",
		Long: `Serve POST /v1/convert, GET /healthz and GET /metrics.

Settings come from the "service" section of --config when given; --listen
and --parser override the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := &config.ServiceConfig{}

			if configPath != "" {
				loaded, err := yamljson.LoadServiceConfig(configPath)
				if err != nil {
					return err //nolint:wrapcheck
				}

				cfg = loaded
			}

			if listen != "" {
				cfg.Listen = listen
			}

			if parser != "" {
				cfg.Parser = parser
			}

			opts := []yamljson.Option{
				yamljson.WithServiceConfig(cfg),
				yamljson.WithLogWriter(cmd.ErrOrStderr()),
				yamljson.WithLogFormat(flags.logFormat),
			}

			if cmd.Flags().Changed("log-level") || cfg.Log.Level == "" {
				opts = append(opts, yamljson.WithLogLevel(flags.logLevel))
			}

			yamljson.NewApp(opts...).Run()

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address, e.g. :8080")
	cmd.Flags().StringVar(&parser, "parser", "", "default parser backend (yamlv3, goccy)")

	return cmd
}
