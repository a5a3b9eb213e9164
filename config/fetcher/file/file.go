package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrTooLarge is returned when the input exceeds the configured size limit.
var ErrTooLarge = errors.New("input exceeds size limit")

// Fetcher implements config.DataFetcher over a file or reader read once at
// construction time.
type Fetcher struct {
	source string
	data   []byte
}

// Option configures a Fetcher.
type Option func(*options)

type options struct {
	maxBytes int64
}

// WithMaxBytes limits how much data is read. Zero or negative means no limit.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		o.maxBytes = n
	}
}

// NewFetcher returns an Fx-friendly constructor that reads the file at fpath.
// It fails if the file cannot be read, is a directory or exceeds the size limit.
func NewFetcher(fpath string, opts ...Option) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
		}

		f, err := os.Open(cleanPath) // #nosec G304 -- path is cleaned and validated
		if err != nil {
			return nil, fmt.Errorf("opening file %q: %w", cleanPath, err)
		}

		defer func() { _ = f.Close() }()

		return newFetcher(cleanPath, f, opts)
	}
}

// NewReaderFetcher reads r to the end, typically stdin. The name labels errors.
func NewReaderFetcher(name string, r io.Reader, opts ...Option) (*Fetcher, error) {
	return newFetcher(name, r, opts)
}

func newFetcher(source string, r io.Reader, opts []Option) (*Fetcher, error) {
	var o options

	for _, apply := range opts {
		apply(&o)
	}

	if o.maxBytes > 0 {
		r = io.LimitReader(r, o.maxBytes+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", source, err)
	}

	if o.maxBytes > 0 && int64(len(data)) > o.maxBytes {
		return nil, fmt.Errorf("%q: %w (%d bytes)", source, ErrTooLarge, o.maxBytes)
	}

	return &Fetcher{source: source, data: data}, nil
}

// Source returns the path or name the data was read from.
func (f *Fetcher) Source() string {
	return f.source
}

// Fetch returns a copy of the data read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
