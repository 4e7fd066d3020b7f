package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/definition"
	"mercator-hq/ganymede/pkg/export"
	"mercator-hq/ganymede/pkg/rule"
	"mercator-hq/ganymede/pkg/telemetry/metrics"
)

var watchFlags struct {
	file     string
	output   string
	format   string
	schedule string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the machine whenever its definition changes",
	Long: `Watch a definition file and regenerate the machine after every change.

Rebuilds are debounced so that editor write bursts trigger a single
regeneration. A cron schedule can additionally force periodic rebuilds,
and a Prometheus metrics endpoint reports build counts, durations, and
machine sizes when enabled in the configuration.

Examples:
  # Rebuild counter.json on every change to counter.yaml
  ganymede watch --file counter.yaml --output counter.json

  # Also rebuild every five minutes
  ganymede watch --file counter.yaml --output counter.dot --format dot \
    --schedule "*/5 * * * *"`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.file, "file", "f", "", "definition file (required)")
	watchCmd.Flags().StringVarP(&watchFlags.output, "output", "o", "", "output file (required)")
	watchCmd.Flags().StringVar(&watchFlags.format, "format", "json", "output format: json, dot, mermaid, graphml")
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron schedule for periodic rebuilds")
	_ = watchCmd.MarkFlagRequired("file")
	_ = watchCmd.MarkFlagRequired("output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadToolConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	em := metrics.NewExplorerMetrics(&cfg.Telemetry.Metrics, nil)

	var lastRulesVersion string

	rebuild := func() error {
		start := time.Now()

		m, art, err := generateMachine(logger, watchFlags.file, false)
		if err != nil {
			em.RecordBuildFailure("unknown", time.Since(start))
			return err
		}
		strategy := string(art.Exploration.Strategy)

		// Track the rule set across rebuilds so the log shows whether
		// a file change actually altered the rules.
		reg := rule.NewRegistry()
		for _, r := range art.Rules {
			if err := reg.Register(r.Name(), r); err != nil {
				return err
			}
		}
		if version := reg.Version(); version != lastRulesVersion {
			logger.Info("Rule set changed",
				"rules", reg.Count(),
				"version", version,
			)
			lastRulesVersion = version
		}

		if err := writeMachine(m, export.Format(watchFlags.format), watchFlags.output); err != nil {
			em.RecordBuildFailure(strategy, time.Since(start))
			return err
		}

		em.RecordBuild(strategy, m, time.Since(start))
		logger.Info("Machine regenerated",
			"definition", watchFlags.file,
			"output", watchFlags.output,
			"states", m.StateCount(),
			"transitions", m.TransitionCount(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	// Initial build. Failures are logged, not fatal: watch mode exists
	// so the user can iterate on a broken definition.
	if err := rebuild(); err != nil {
		logger.Error("Initial build failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, em.Handler())
		srv := &http.Server{
			Addr:              cfg.Telemetry.Metrics.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("Metrics endpoint started",
				"address", cfg.Telemetry.Metrics.ListenAddress,
				"path", cfg.Telemetry.Metrics.Path,
			)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics endpoint failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	schedule := watchFlags.schedule
	if schedule == "" {
		schedule = cfg.Watch.Schedule
	}
	if schedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(schedule, func() {
			if err := rebuild(); err != nil {
				logger.Error("Scheduled rebuild failed", "error", err)
			}
		}); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
		}
		c.Start()
		defer c.Stop()
		logger.Info("Rebuild schedule active", "schedule", schedule)
	}

	watcher, err := definition.NewWatcher(&definition.WatcherConfig{
		Path:             watchFlags.file,
		DebounceInterval: cfg.Watch.DebounceInterval,
	}, logger)
	if err != nil {
		return err
	}

	return watcher.Watch(ctx, rebuild)
}
