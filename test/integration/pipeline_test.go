//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"mercator-hq/ganymede/pkg/definition"
	"mercator-hq/ganymede/pkg/explorer"
	"mercator-hq/ganymede/pkg/export"
	"mercator-hq/ganymede/pkg/expr"
	"mercator-hq/ganymede/pkg/filter"
	"mercator-hq/ganymede/pkg/machine"
)

func examplePath(name string) string {
	return filepath.Join("..", "..", "examples", name)
}

// buildExample runs the full pipeline for one example definition.
func buildExample(t *testing.T, name string) (*machine.StateMachine, *definition.Artifacts) {
	t.Helper()

	doc, err := definition.NewLoader().Load(examplePath(name))
	if err != nil {
		t.Fatalf("Load(%s) error = %v", name, err)
	}

	evaluator := expr.NewEvaluator()
	art, err := definition.Compile(doc, evaluator)
	if err != nil {
		t.Fatalf("Compile(%s) error = %v", name, err)
	}

	m, err := explorer.New(nil).Build(art.Initial, art.Rules, art.Exploration)
	if err != nil {
		t.Fatalf("Build(%s) error = %v", name, err)
	}

	if len(art.Filters.Filters) > 0 {
		selected, tagged, err := filter.NewEngine(evaluator, nil).Apply(m, &art.Filters)
		if err != nil {
			t.Fatalf("filter engine (%s) error = %v", name, err)
		}
		m, err = filter.NewPathFilter(nil).Apply(tagged, selected)
		if err != nil {
			t.Fatalf("path filter (%s) error = %v", name, err)
		}
	}

	return m, art
}

func TestCounterExample(t *testing.T) {
	m, _ := buildExample(t, "counter.yaml")

	if m.StateCount() != 4 {
		t.Errorf("StateCount() = %d, want 4", m.StateCount())
	}
	if m.TransitionCount() != 3 {
		t.Errorf("TransitionCount() = %d, want 3", m.TransitionCount())
	}
	if !m.IsValid() {
		t.Error("IsValid() = false")
	}

	start, ok := m.State(m.StartingStateID())
	if !ok {
		t.Fatal("starting state missing")
	}
	if got := start.Variables["count"]; !got.Equal(machine.IntValue(0)) {
		t.Errorf("starting count = %v, want 0", got)
	}
}

func TestTrafficLightExample(t *testing.T) {
	m, _ := buildExample(t, "traffic_light.yaml")

	// Three lights cycling: the return to red is a converging
	// transition, not a fourth state.
	if m.StateCount() != 3 {
		t.Errorf("StateCount() = %d, want 3", m.StateCount())
	}
	if m.TransitionCount() != 3 {
		t.Errorf("TransitionCount() = %d, want 3", m.TransitionCount())
	}

	back := 0
	for _, tr := range m.Transitions() {
		if tr.TargetID == m.StartingStateID() {
			back++
		}
	}
	if back != 1 {
		t.Errorf("transitions into starting state = %d, want 1", back)
	}
}

func TestOrderWorkflowExample(t *testing.T) {
	m, _ := buildExample(t, "order_workflow.yaml")

	// The cancellation branch does not reach a delivered order, so the
	// path filter removes it.
	for _, id := range m.StateIDs() {
		s, _ := m.State(id)
		if got := s.Variables["status"]; got.Equal(machine.StringValue("cancelled")) {
			t.Errorf("state %s is cancelled, want branch pruned", id)
		}
	}

	// placed, confirmed, shipped, delivered survive.
	if m.StateCount() != 4 {
		t.Errorf("StateCount() = %d, want 4", m.StateCount())
	}

	terminal := 0
	for _, id := range m.StateIDs() {
		s, _ := m.State(id)
		if v, ok := s.Attributes["terminal"]; ok && v.Equal(machine.BoolValue(true)) {
			terminal++
			if got := s.Attributes["outcome"]; !got.Equal(machine.StringValue("success")) {
				t.Errorf("state %s outcome = %v, want success", id, got)
			}
		}
	}
	if terminal != 1 {
		t.Errorf("terminal states = %d, want 1", terminal)
	}
}

func TestExampleExports(t *testing.T) {
	m, _ := buildExample(t, "order_workflow.yaml")

	for _, format := range []export.Format{export.FormatJSON, export.FormatDOT, export.FormatMermaid, export.FormatGraphML} {
		exporter, err := export.New(format)
		if err != nil {
			t.Fatalf("New(%q) error = %v", format, err)
		}

		var buf bytes.Buffer
		if err := exporter.Export(&buf, m); err != nil {
			t.Errorf("%s: Export() error = %v", format, err)
			continue
		}
		if buf.Len() == 0 {
			t.Errorf("%s: empty output", format)
		}
	}
}

func TestExampleJSONRoundTrip(t *testing.T) {
	m, _ := buildExample(t, "counter.yaml")

	var buf bytes.Buffer
	if err := (&export.JSONExporter{}).Export(&buf, m); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var doc struct {
		States      []json.RawMessage `json:"states"`
		Transitions []json.RawMessage `json:"transitions"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(doc.States) != m.StateCount() {
		t.Errorf("JSON states = %d, want %d", len(doc.States), m.StateCount())
	}
	if len(doc.Transitions) != m.TransitionCount() {
		t.Errorf("JSON transitions = %d, want %d", len(doc.Transitions), m.TransitionCount())
	}
}

func TestLintAllExamples(t *testing.T) {
	matches, err := filepath.Glob(examplePath("*.yaml"))
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no example definitions found")
	}

	for _, path := range matches {
		doc, err := definition.NewLoader().Load(path)
		if err != nil {
			t.Errorf("%s: Load() error = %v", filepath.Base(path), err)
			continue
		}
		if _, err := definition.Compile(doc, expr.NewEvaluator()); err != nil {
			t.Errorf("%s: Compile() error = %v", filepath.Base(path), err)
		}
	}
}
