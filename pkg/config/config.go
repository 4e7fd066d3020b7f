package config

import "time"

// Config is the root configuration structure for the tool.
type Config struct {
	// Telemetry contains observability configuration: logging and
	// metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch contains configuration for watch mode, which rebuilds the
	// machine when its definition file changes or on a schedule.
	Watch WatchConfig `yaml:"watch"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn",
	// "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether watch mode serves a metrics endpoint.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for the metrics endpoint.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the Prometheus metric namespace.
	// Default: "ganymede"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "explorer"
	Subsystem string `yaml:"subsystem"`
}

// WatchConfig contains watch-mode configuration.
type WatchConfig struct {
	// DebounceInterval is the time to wait after a file change before
	// rebuilding, so editor write bursts trigger a single rebuild.
	// Default: 200ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Schedule is an optional cron expression for scheduled rebuilds
	// in addition to file-change triggers (e.g. "0 * * * *" for
	// hourly). Empty disables scheduled rebuilds.
	Schedule string `yaml:"schedule"`
}
