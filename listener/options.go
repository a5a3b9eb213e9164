package listener

import "time"

// Option configures a listener Config.
type Option func(*Config)

// WithAddress sets the listen address.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithTimeouts sets the read and write timeouts. Zero keeps the default.
func WithTimeouts(read, write time.Duration) Option {
	return func(cfg *Config) {
		cfg.ReadTimeout = read
		cfg.WriteTimeout = write
	}
}
