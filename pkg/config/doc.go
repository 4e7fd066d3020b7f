// Package config loads and validates the tool-level configuration:
// telemetry (logging and metrics) and watch-mode behavior.
//
// Configuration comes from a YAML file, with defaults applied for
// anything unset and GANYMEDE_* environment variables taking
// precedence over the file. Machine definitions — initial state,
// rules, exploration limits, filters — are not configuration; they
// live in definition files handled by the definition package.
package config
