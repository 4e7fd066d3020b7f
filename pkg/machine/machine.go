package machine

import (
	"fmt"

	"github.com/google/uuid"
)

// Transition is a directed, rule-labeled edge between two discovered
// states. RuleName is the label of the rule that produced the edge and
// is not required to be unique across transitions.
type Transition struct {
	SourceID string
	TargetID string
	RuleName string
}

// StateMachine is the reachable-state graph produced by exploration.
// States are keyed by id; transitions preserve discovery order. A
// machine is built incrementally and treated as immutable once the
// explorer returns it.
type StateMachine struct {
	id              string
	states          map[string]*State
	order           []string
	transitions     []Transition
	startingStateID string
}

// NewStateMachine creates an empty machine with a fresh unique id.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		id:     uuid.New().String(),
		states: make(map[string]*State),
	}
}

// ID returns the machine's unique identifier.
func (m *StateMachine) ID() string {
	return m.id
}

// AddState registers a state under the given id.
func (m *StateMachine) AddState(id string, s *State) error {
	if id == "" {
		return &ArgumentError{Name: "id", Message: "state id cannot be empty"}
	}
	if s == nil {
		return &ArgumentError{Name: "state", Message: "state cannot be nil"}
	}
	if _, exists := m.states[id]; exists {
		return fmt.Errorf("state %q already registered", id)
	}
	m.states[id] = s
	m.order = append(m.order, id)
	return nil
}

// State returns the state registered under id.
func (m *StateMachine) State(id string) (*State, bool) {
	s, ok := m.states[id]
	return s, ok
}

// States returns the id-to-state index. Callers must treat the map as
// read-only.
func (m *StateMachine) States() map[string]*State {
	return m.states
}

// StateIDs returns all state ids in registration order.
func (m *StateMachine) StateIDs() []string {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// SetStartingState marks id as the machine's starting state. The id
// must already be registered.
func (m *StateMachine) SetStartingState(id string) error {
	if _, ok := m.states[id]; !ok {
		return &InvalidReferenceError{ID: id, Message: "cannot be the starting state"}
	}
	m.startingStateID = id
	return nil
}

// StartingStateID returns the starting state id, or "" if unset.
func (m *StateMachine) StartingStateID() string {
	return m.startingStateID
}

// AddTransition records a rule-labeled edge. Both endpoints must be
// registered states.
func (m *StateMachine) AddTransition(t Transition) error {
	if _, ok := m.states[t.SourceID]; !ok {
		return &InvalidReferenceError{ID: t.SourceID, Message: "transition source does not exist"}
	}
	if _, ok := m.states[t.TargetID]; !ok {
		return &InvalidReferenceError{ID: t.TargetID, Message: "transition target does not exist"}
	}
	m.transitions = append(m.transitions, t)
	return nil
}

// Transitions returns a copy of the transition list in discovery
// order.
func (m *StateMachine) Transitions() []Transition {
	out := make([]Transition, len(m.transitions))
	copy(out, m.transitions)
	return out
}

// StateCount returns the number of registered states.
func (m *StateMachine) StateCount() int {
	return len(m.states)
}

// TransitionCount returns the number of recorded transitions.
func (m *StateMachine) TransitionCount() int {
	return len(m.transitions)
}

// Validate checks the machine invariant: at least one state, a set and
// registered starting state, and every transition endpoint registered.
func (m *StateMachine) Validate() error {
	if len(m.states) == 0 {
		return fmt.Errorf("machine has no states")
	}
	if m.startingStateID == "" {
		return fmt.Errorf("machine has no starting state")
	}
	if _, ok := m.states[m.startingStateID]; !ok {
		return &InvalidReferenceError{ID: m.startingStateID, Message: "starting state is not registered"}
	}
	for i, t := range m.transitions {
		if _, ok := m.states[t.SourceID]; !ok {
			return &InvalidReferenceError{ID: t.SourceID, Message: fmt.Sprintf("source of transition %d is not registered", i)}
		}
		if _, ok := m.states[t.TargetID]; !ok {
			return &InvalidReferenceError{ID: t.TargetID, Message: fmt.Sprintf("target of transition %d is not registered", i)}
		}
	}
	return nil
}

// IsValid reports whether Validate passes.
func (m *StateMachine) IsValid() bool {
	return m.Validate() == nil
}

// Clone returns a deep copy with a fresh machine id. State clones are
// independent, so attribute tagging on the copy never touches the
// original.
func (m *StateMachine) Clone() *StateMachine {
	c := NewStateMachine()
	for _, id := range m.order {
		// Registered ids are unique, AddState cannot fail here.
		_ = c.AddState(id, m.states[id].Clone())
	}
	c.transitions = make([]Transition, len(m.transitions))
	copy(c.transitions, m.transitions)
	c.startingStateID = m.startingStateID
	return c
}
