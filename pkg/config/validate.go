package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for values the tool cannot run
// with. It assumes defaults are already applied.
func Validate(cfg *Config) error {
	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level: unknown level %q", cfg.Telemetry.Logging.Level)
	}

	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format: unknown format %q", cfg.Telemetry.Logging.Format)
	}

	if cfg.Telemetry.Metrics.Path == "" || cfg.Telemetry.Metrics.Path[0] != '/' {
		return fmt.Errorf("telemetry.metrics.path: %q must start with /", cfg.Telemetry.Metrics.Path)
	}

	if cfg.Watch.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Watch.Schedule); err != nil {
			return fmt.Errorf("watch.schedule: invalid cron expression %q: %w", cfg.Watch.Schedule, err)
		}
	}

	return nil
}
