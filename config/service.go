package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/0xalexb/yamljson/document"
	"github.com/0xalexb/yamljson/logging"
)

// Service defaults.
const (
	DefaultListen        = ":8080"
	DefaultMaxBodyBytes  = 1 << 20
	DefaultMaxMergePairs = 1 << 16
	DefaultMaxValues     = 1 << 20

	DefaultRequestTimeout = 30 * time.Second
)

// ErrInvalidLimit is returned when a size or budget setting is negative.
var ErrInvalidLimit = errors.New("limit must not be negative")

// ErrEmptyListen is returned when the listen address is empty after defaults.
var ErrEmptyListen = errors.New("listen address must not be empty")

// RateLimitConfig configures the global request rate limit. A zero rate disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ServiceConfig configures the conversion HTTP service.
type ServiceConfig struct {
	Listen         string               `yaml:"listen"`
	Parser         string               `yaml:"parser"`
	MaxBodyBytes   int64                `yaml:"max_body_bytes"`
	MaxMergePairs  int                  `yaml:"max_merge_pairs"`
	MaxValues      int                  `yaml:"max_values"`
	RequestTimeout time.Duration        `yaml:"request_timeout"`
	RateLimit      RateLimitConfig      `yaml:"rate_limit"`
	Metrics        *bool                `yaml:"metrics"`
	Log            logging.LoggerConfig `yaml:"log"`
}

// SetDefaults fills zero fields with the service defaults.
func (c *ServiceConfig) SetDefaults() bool {
	changed := false

	if c.Listen == "" {
		c.Listen = DefaultListen
		changed = true
	}

	if c.Parser == "" {
		c.Parser = document.DefaultBackend
		changed = true
	}

	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
		changed = true
	}

	if c.MaxMergePairs == 0 {
		c.MaxMergePairs = DefaultMaxMergePairs
		changed = true
	}

	if c.MaxValues == 0 {
		c.MaxValues = DefaultMaxValues
		changed = true
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
		changed = true
	}

	if c.Metrics == nil {
		enabled := true
		c.Metrics = &enabled
		changed = true
	}

	return changed
}

// Validate checks the settings.
func (c *ServiceConfig) Validate() error {
	if c.Listen == "" {
		return ErrEmptyListen
	}

	if c.MaxBodyBytes < 0 || c.MaxMergePairs < 0 || c.MaxValues < 0 || c.RequestTimeout < 0 {
		return ErrInvalidLimit
	}

	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit: %w", ErrInvalidLimit)
	}

	_, err := document.LoaderByName(c.Parser)
	if err != nil {
		return fmt.Errorf("parser: %w", err)
	}

	return nil
}

// MetricsEnabled reports whether the /metrics endpoint is served. Unset means enabled.
func (c *ServiceConfig) MetricsEnabled() bool {
	return c.Metrics == nil || *c.Metrics
}
