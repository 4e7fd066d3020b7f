package machine

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// State is a snapshot of variable bindings discovered during
// exploration. Variables drive exploration equality; Attributes are
// post-hoc metadata (set by the filter engine) and are excluded from
// equality on purpose, so tagging a machine never changes its shape.
type State struct {
	Variables  map[string]Value
	Attributes map[string]Value
}

// NewState creates a state over a copy of the given variables.
func NewState(variables map[string]Value) *State {
	s := &State{
		Variables:  make(map[string]Value, len(variables)),
		Attributes: make(map[string]Value),
	}
	for name, v := range variables {
		s.Variables[name] = v
	}
	return s
}

// Clone returns a fully independent copy. Rules must operate on clones
// so that a discovered state is never mutated after registration.
func (s *State) Clone() *State {
	c := &State{
		Variables:  make(map[string]Value, len(s.Variables)),
		Attributes: make(map[string]Value, len(s.Attributes)),
	}
	for name, v := range s.Variables {
		c.Variables[name] = v
	}
	for name, v := range s.Attributes {
		c.Attributes[name] = v
	}
	return c
}

// VariablesEqual reports whether two states have exactly the same
// variable bindings. Attributes do not participate.
func (s *State) VariablesEqual(o *State) bool {
	if len(s.Variables) != len(o.Variables) {
		return false
	}
	for name, v := range s.Variables {
		ov, ok := o.Variables[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Fingerprint returns a digest of the variable bindings, stable across
// map iteration order and distinguishing value kinds. Two states are
// variable-equal iff their fingerprints match, which gives the
// explorer an O(1) dedup index.
func (s *State) Fingerprint() string {
	names := make([]string, 0, len(s.Variables))
	for name := range s.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(s.Variables[name].canonical())
		sb.WriteByte('\n')
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
