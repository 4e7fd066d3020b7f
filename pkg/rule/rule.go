package rule

import (
	"mercator-hq/ganymede/pkg/machine"
)

// Rule is one transformation the explorer may apply to a state.
//
// Implementations must be pure with respect to their input: Execute
// returns an independent successor and never mutates the state it was
// given, because that state is already registered in the machine under
// its fingerprint.
type Rule interface {
	// Name returns the rule's label, used on transitions. Names need
	// not be unique across rules.
	Name() string

	// IsAvailable reports whether the rule applies to the state. An
	// error aborts the exploration that asked.
	IsAvailable(s *machine.State) (bool, error)

	// Execute computes the successor state. The result must be a new
	// State sharing no mutable storage with the input.
	Execute(s *machine.State) (*machine.State, error)
}
