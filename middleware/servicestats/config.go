package servicestats

import "time"

// Config holds service stats configuration.
type Config struct {
	// SlowThreshold marks calls at or above this latency as slow (0 disables)
	SlowThreshold time.Duration

	// LogOnStop writes a per-service summary when the middleware stops
	LogOnStop bool
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SlowThreshold: 500 * time.Millisecond,
		LogOnStop:     true,
	}
}

// Option is a function that modifies Config.
type Option func(*Config)

// WithSlowThreshold sets the latency from which a call is logged as slow.
func WithSlowThreshold(d time.Duration) Option {
	return func(c *Config) {
		c.SlowThreshold = d
	}
}

// WithLogOnStop toggles the summary logged on stop.
func WithLogOnStop(enabled bool) Option {
	return func(c *Config) {
		c.LogOnStop = enabled
	}
}
