// Package machine defines the core data model for generated state
// machines: the tagged Value type used for state variables, State,
// Transition, and the StateMachine container produced by exploration.
//
// Values form a closed union of string, int, float, bool, and null.
// There is no automatic coercion on equality: an int 5 and a float 5.0
// are different values, which in turn makes them different states
// during exploration.
//
// A StateMachine is built incrementally by the explorer and treated as
// immutable once returned. Filtering components never mutate a
// machine; they produce new instances.
package machine
