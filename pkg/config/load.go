package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults,
// and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies GANYMEDE_* environment variable overrides. Environment
// variables always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file and apply defaults
//  2. Apply environment variable overrides
//  3. Validate the final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after env overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides overwrites configuration fields from GANYMEDE_*
// environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GANYMEDE_LOG_LEVEL"); v != "" {
		cfg.Telemetry.Logging.Level = v
	}
	if v := os.Getenv("GANYMEDE_LOG_FORMAT"); v != "" {
		cfg.Telemetry.Logging.Format = v
	}
	if v := os.Getenv("GANYMEDE_LOG_ADD_SOURCE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Telemetry.Logging.AddSource = b
		}
	}

	if v := os.Getenv("GANYMEDE_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("GANYMEDE_METRICS_LISTEN_ADDRESS"); v != "" {
		cfg.Telemetry.Metrics.ListenAddress = v
	}
	if v := os.Getenv("GANYMEDE_METRICS_PATH"); v != "" {
		cfg.Telemetry.Metrics.Path = v
	}

	if v := os.Getenv("GANYMEDE_WATCH_DEBOUNCE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Watch.DebounceInterval = d
		}
	}
	if v := os.Getenv("GANYMEDE_WATCH_SCHEDULE"); v != "" {
		cfg.Watch.Schedule = v
	}
}
