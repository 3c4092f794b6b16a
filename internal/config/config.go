// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath points at the SQLite database file. Empty selects the
	// in-memory store.
	DBPath string `koanf:"db_path"`

	// ShutdownGraceSeconds bounds graceful HTTP shutdown.
	ShutdownGraceSeconds int `koanf:"shutdown_grace_seconds"`

	// MetricsRefreshSeconds sets the system metrics sampling interval.
	MetricsRefreshSeconds int `koanf:"metrics_refresh_seconds"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		DBPath:                "",
		ShutdownGraceSeconds:  10,
		MetricsRefreshSeconds: 30,
	}
}
