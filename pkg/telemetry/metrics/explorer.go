package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/ganymede/pkg/config"
	"mercator-hq/ganymede/pkg/machine"
)

// ExplorerMetrics tracks metrics for state-space builds.
//
// Metrics:
//   - ganymede_explorer_builds_total: Total builds by strategy and status
//   - ganymede_explorer_build_duration_seconds: Build duration
//   - ganymede_explorer_states_discovered: States in the built machine
//   - ganymede_explorer_transitions_recorded: Transitions in the built machine
type ExplorerMetrics struct {
	registry *prometheus.Registry

	// Total builds, labeled by strategy and outcome
	buildsTotal *prometheus.CounterVec

	// Build duration histogram
	buildDuration *prometheus.HistogramVec

	// Size of the most recent successful build
	statesDiscovered    *prometheus.GaugeVec
	transitionsRecorded *prometheus.GaugeVec
}

// NewExplorerMetrics creates and registers explorer metrics. A nil
// registry gets a fresh one.
func NewExplorerMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ExplorerMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	em := &ExplorerMetrics{
		registry: registry,

		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "builds_total",
				Help:      "Total number of state machine builds",
			},
			[]string{"strategy", "status"},
		),

		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "build_duration_seconds",
				Help:      "Duration of state machine builds in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
			[]string{"strategy"},
		),

		statesDiscovered: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "states_discovered",
				Help:      "States in the most recently built machine",
			},
			[]string{"strategy"},
		),

		transitionsRecorded: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "transitions_recorded",
				Help:      "Transitions in the most recently built machine",
			},
			[]string{"strategy"},
		),
	}

	registry.MustRegister(
		em.buildsTotal,
		em.buildDuration,
		em.statesDiscovered,
		em.transitionsRecorded,
	)

	return em
}

// Registry returns the underlying Prometheus registry.
func (em *ExplorerMetrics) Registry() *prometheus.Registry {
	return em.registry
}

// RecordBuild records a completed build.
func (em *ExplorerMetrics) RecordBuild(strategy string, m *machine.StateMachine, duration time.Duration) {
	em.buildsTotal.WithLabelValues(strategy, "success").Inc()
	em.buildDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	em.statesDiscovered.WithLabelValues(strategy).Set(float64(m.StateCount()))
	em.transitionsRecorded.WithLabelValues(strategy).Set(float64(m.TransitionCount()))
}

// RecordBuildFailure records a failed build.
func (em *ExplorerMetrics) RecordBuildFailure(strategy string, duration time.Duration) {
	em.buildsTotal.WithLabelValues(strategy, "error").Inc()
	em.buildDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}
