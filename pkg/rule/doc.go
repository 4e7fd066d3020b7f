// Package rule defines the transformation rules that drive state-space
// exploration.
//
// A Rule decides whether it applies to a state and, when executed,
// produces a successor state without mutating its input. Rules are
// usually declarative: a condition expression gating availability and
// a set of transform expressions computing the successor's variables.
// Programmatic rules implement the Rule interface directly and are
// registered at compile time through the Registry; loading rule code
// from external binaries is deliberately unsupported.
package rule
