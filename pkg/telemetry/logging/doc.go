// Package logging configures the structured logger the rest of the
// tool injects into the explorer and filter components.
//
// The engine packages accept a plain *slog.Logger and treat a nil
// logger as a discard logger; this package only turns configuration
// into a handler. Level filtering happens in the handler — the
// explorer always emits its events and never filters itself.
package logging
