package yamljson

import (
	"fmt"
	"io"

	"github.com/0xalexb/yamljson/config"
	filefetcher "github.com/0xalexb/yamljson/config/fetcher/file"
	yamlparser "github.com/0xalexb/yamljson/config/parser/yaml"
	"github.com/0xalexb/yamljson/listener"

	"go.uber.org/fx"
)

// ConfigSection is the top-level key of the service settings in a config file.
const ConfigSection = "service"

// maxConfigBytes bounds a config file.
const maxConfigBytes = 1 << 20

// Options holds the App settings.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	LogWriter io.Writer
	Service   *config.ServiceConfig

	err error
}

// Option applies one setting to Options.
type Option func(*Options)

// WithModules adds Fx modules.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithHTTPListener adds a named HTTP listener serving the http.Handler tagged with name.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithLogLevel sets the log level: "debug", "info", "warn" or "error".
// It takes precedence over the level in the service config.
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogWriter redirects logs, which go to stderr by default.
func WithLogWriter(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogWriter = w
	}
}

// WithServiceConfig runs the conversion service with cfg. Defaults are
// applied to cfg when the App is created.
func WithServiceConfig(cfg *config.ServiceConfig) Option {
	return func(opts *Options) {
		opts.Service = cfg
	}
}

// WithConfigFile loads the service settings from the ConfigSection of a YAML file.
func WithConfigFile(path string) Option {
	return func(opts *Options) {
		cfg, err := LoadServiceConfig(path)
		if err != nil {
			opts.err = err

			return
		}

		opts.Service = cfg
	}
}

// LoadServiceConfig reads, defaults and validates the service settings of a
// YAML config file. Unknown keys are rejected.
func LoadServiceConfig(path string) (*config.ServiceConfig, error) {
	fetcher, err := filefetcher.NewFetcher(path, filefetcher.WithMaxBytes(maxConfigBytes))()
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	cfg, err := config.Load(yamlparser.NewParser(yamlparser.WithStrict()), fetcher, &config.ServiceConfig{}, ConfigSection)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}
