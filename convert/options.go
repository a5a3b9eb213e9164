package convert

import (
	"errors"
	"log/slog"

	"github.com/0xalexb/yamljson/document"
)

// ErrNegativeLimit is returned by NewConverter when a budget option is negative.
var ErrNegativeLimit = errors.New("limit must not be negative")

// Option configures a Converter.
type Option func(*Converter)

// WithBackend selects the parser backend by name, see document.LoaderByName.
func WithBackend(name string) Option {
	return func(c *Converter) {
		c.backend = name
		c.loader = nil
	}
}

// WithLoader sets a custom loader. The backend name is used only for logging.
func WithLoader(name string, loader document.Loader) Option {
	return func(c *Converter) {
		c.backend = name
		c.loader = loader
	}
}

// WithMaxMergePairs bounds the pair list of any mapping after merge resolution.
// Zero disables the limit.
func WithMaxMergePairs(n int) Option {
	return func(c *Converter) {
		c.maxMergePairs = n
	}
}

// WithMaxValues bounds the number of JSON values one conversion may produce,
// which caps alias fan-out. Zero disables the limit.
func WithMaxValues(n int) Option {
	return func(c *Converter) {
		c.maxValues = n
	}
}

// WithLogger enables debug logging of conversion statistics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}
