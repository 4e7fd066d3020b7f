package machine

import "fmt"

// ArgumentError reports a nil or missing required argument. These are
// programming errors at the call site and are never retried.
type ArgumentError struct {
	// Name identifies the offending parameter, including the index for
	// slice elements (e.g. "rules[2]").
	Name string

	// Message describes what was wrong with the argument.
	Message string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Message)
}

// InvalidReferenceError reports a state id used where the machine has
// no such state, e.g. setting a starting state that was never added.
type InvalidReferenceError struct {
	// ID is the unresolved state id.
	ID string

	// Message describes the reference that failed.
	Message string
}

// Error implements the error interface.
func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("unknown state %q: %s", e.ID, e.Message)
}
