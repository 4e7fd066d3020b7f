// Ganymede generates finite state machines by exhaustively exploring
// the state space reachable from an initial state under a set of
// transformation rules.
//
// Usage:
//
//	# Generate a machine from a definition file
//	ganymede build --file counter.yaml --format dot
//
//	# Validate definition files
//	ganymede lint --file counter.yaml
//
//	# Rebuild on definition changes, serving Prometheus metrics
//	ganymede watch --file counter.yaml --output counter.json
//
//	# Show version information
//	ganymede version
package main

func main() {
	Execute()
}
