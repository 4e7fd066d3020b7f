package export

import (
	"encoding/json"
	"fmt"
	"io"

	"mercator-hq/ganymede/pkg/machine"
)

// JSONExporter writes the machine as a single JSON document.
type JSONExporter struct {
	// Indent is the indentation string, empty for compact output.
	Indent string
}

type jsonDocument struct {
	ID            string           `json:"id"`
	StartingState string           `json:"starting_state,omitempty"`
	States        []jsonState      `json:"states"`
	Transitions   []jsonTransition `json:"transitions"`
}

type jsonState struct {
	ID         string                   `json:"id"`
	Variables  map[string]machine.Value `json:"variables"`
	Attributes map[string]machine.Value `json:"attributes,omitempty"`
}

type jsonTransition struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Rule   string `json:"rule"`
}

// Format returns FormatJSON.
func (e *JSONExporter) Format() Format { return FormatJSON }

// Export writes the machine to w.
func (e *JSONExporter) Export(w io.Writer, m *machine.StateMachine) error {
	if m == nil {
		return &machine.ArgumentError{Name: "m", Message: "machine must not be nil"}
	}

	doc := jsonDocument{
		ID:            m.ID(),
		StartingState: m.StartingStateID(),
		States:        make([]jsonState, 0, m.StateCount()),
		Transitions:   make([]jsonTransition, 0, m.TransitionCount()),
	}

	for _, id := range m.StateIDs() {
		s, ok := m.State(id)
		if !ok {
			return fmt.Errorf("state %q listed but not present", id)
		}
		js := jsonState{ID: id, Variables: s.Variables}
		if len(s.Attributes) > 0 {
			js.Attributes = s.Attributes
		}
		doc.States = append(doc.States, js)
	}

	for _, t := range m.Transitions() {
		doc.Transitions = append(doc.Transitions, jsonTransition{
			Source: t.SourceID,
			Target: t.TargetID,
			Rule:   t.RuleName,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", e.Indent)
	return enc.Encode(doc)
}
