package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
// It exposes all metrics registered on this instance's registry in the
// standard exposition format; watch mode mounts it at the configured
// metrics path.
func (em *ExplorerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(
		em.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}
