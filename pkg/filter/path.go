package filter

import (
	"io"
	"log/slog"

	"mercator-hq/ganymede/pkg/machine"
)

// PathFilter extracts the minimal sub-machine covering all paths from
// the starting state to a selected state set.
type PathFilter struct {
	logger *slog.Logger
}

// NewPathFilter creates a path filter. A nil logger discards events.
func NewPathFilter(logger *slog.Logger) *PathFilter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PathFilter{logger: logger}
}

// Apply returns a new machine retaining exactly the states that are
// forward-reachable from the starting state AND reach a selected
// state, plus every original transition whose endpoints are both
// retained. Back-edges between retained states deliberately survive.
// A selected id reaches itself. If no selected state is reachable the
// result is an empty machine, not an error. Selected ids absent from
// the machine are ignored.
func (f *PathFilter) Apply(m *machine.StateMachine, selected []string) (*machine.StateMachine, error) {
	if m == nil {
		return nil, &machine.ArgumentError{Name: "machine", Message: "machine cannot be nil"}
	}
	if selected == nil {
		return nil, &machine.ArgumentError{Name: "selected", Message: "selected ids cannot be nil"}
	}

	forward, reverse := adjacency(m)

	// Everything the starting state can reach.
	reachableFromStart := make(map[string]bool)
	if start := m.StartingStateID(); start != "" {
		if _, ok := m.State(start); ok {
			walk(start, forward, reachableFromStart)
		}
	}

	// Everything that reaches a reachable selected state, walking the
	// reversed edges.
	reachesSelected := make(map[string]bool)
	for _, id := range selected {
		if reachableFromStart[id] {
			walk(id, reverse, reachesSelected)
		}
	}

	out := machine.NewStateMachine()
	for _, id := range m.StateIDs() {
		if reachableFromStart[id] && reachesSelected[id] {
			s, _ := m.State(id)
			if err := out.AddState(id, s.Clone()); err != nil {
				return nil, err
			}
		}
	}

	for _, t := range m.Transitions() {
		if _, ok := out.State(t.SourceID); !ok {
			continue
		}
		if _, ok := out.State(t.TargetID); !ok {
			continue
		}
		if err := out.AddTransition(t); err != nil {
			return nil, err
		}
	}

	if start := m.StartingStateID(); start != "" {
		if _, retained := out.State(start); retained {
			if err := out.SetStartingState(start); err != nil {
				return nil, err
			}
		}
	}

	f.logger.Debug("path filter applied",
		"selected", len(selected),
		"states_in", m.StateCount(),
		"states_out", out.StateCount(),
		"transitions_in", m.TransitionCount(),
		"transitions_out", out.TransitionCount(),
	)
	return out, nil
}

// adjacency builds forward and reverse edge indexes.
func adjacency(m *machine.StateMachine) (forward, reverse map[string][]string) {
	forward = make(map[string][]string)
	reverse = make(map[string][]string)
	for _, t := range m.Transitions() {
		forward[t.SourceID] = append(forward[t.SourceID], t.TargetID)
		reverse[t.TargetID] = append(reverse[t.TargetID], t.SourceID)
	}
	return forward, reverse
}

// walk marks every node reachable from id over edges, cycle-safe via
// the visited set.
func walk(id string, edges map[string][]string, visited map[string]bool) {
	if visited[id] {
		return
	}
	visited[id] = true
	stack := []string{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range edges[current] {
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
}
