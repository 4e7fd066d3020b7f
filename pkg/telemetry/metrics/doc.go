// Package metrics exposes Prometheus metrics for machine builds.
//
// The explorer itself stays metrics-free; the CLI records build
// outcomes here after each run, and watch mode serves the registry
// over HTTP for scraping.
package metrics
