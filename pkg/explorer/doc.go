// Package explorer builds state machines by exhaustively or boundedly
// exploring every state reachable from an initial state under a set of
// transformation rules.
//
// Exploration is a frontier search: BFS and DFS differ only in
// expansion order, and therefore only in which states get starved when
// MaxStates or MaxDepth truncate the run — an unlimited run produces
// an equivalent reachable graph under either strategy. Structural
// deduplication by variable fingerprint is the sole cycle-prevention
// mechanism: a rule execution that reproduces an already-discovered
// state records a transition to the existing id and is not re-explored.
//
// Build is single-threaded and synchronous. The engine defines no
// cancellation of its own; a caller wanting a timeout must bound the
// configuration or race the call externally. Separate Builder
// instances are safe to use concurrently; one instance is not.
package explorer
