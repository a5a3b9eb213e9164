package config

import (
	"fmt"
	"log/slog"
)

// Parser decodes raw configuration data into target.
//
// The path selects a section using colon (:) as the separator for nested
// keys, so "service:limits" addresses config["service"]["limits"]. An empty
// path decodes the whole document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher returns raw configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator is implemented by configurations that can check themselves.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by configurations that fill in missing values.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns an Fx-friendly constructor that fetches, parses, defaults
// and validates target, in that order.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		return Load(parser, fetcher, target, path)
	}
}

// Load runs the Provider steps directly, for callers outside of Fx.
func Load[T any](parser Parser, fetcher DataFetcher, target *T, path string) (*T, error) {
	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	err = parser.Parse(data, target, path)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	if defaulter, ok := any(target).(Defaulter); ok && defaulter.SetDefaults() {
		slog.Debug("config defaults applied", slog.String("path", path))
	}

	if validator, ok := any(target).(Validator); ok {
		err = validator.Validate()
		if err != nil {
			return nil, fmt.Errorf("validating error: %w", err)
		}
	}

	return target, nil
}
