package machine

import (
	"errors"
	"testing"
)

func newTestMachine(t *testing.T, ids ...string) *StateMachine {
	t.Helper()
	m := NewStateMachine()
	for i, id := range ids {
		if err := m.AddState(id, NewState(map[string]Value{"i": IntValue(int64(i))})); err != nil {
			t.Fatalf("AddState(%q): %v", id, err)
		}
	}
	return m
}

func TestStateMachineAddState(t *testing.T) {
	m := NewStateMachine()

	if err := m.AddState("", NewState(nil)); err == nil {
		t.Error("empty id should be rejected")
	}
	if err := m.AddState("s0", nil); err == nil {
		t.Error("nil state should be rejected")
	}
	var argErr *ArgumentError
	if err := m.AddState("s0", nil); !errors.As(err, &argErr) {
		t.Errorf("expected ArgumentError, got %T", err)
	}

	if err := m.AddState("s0", NewState(nil)); err != nil {
		t.Fatalf("AddState: %v", err)
	}
	if err := m.AddState("s0", NewState(nil)); err == nil {
		t.Error("duplicate id should be rejected")
	}
}

func TestStateMachineSetStartingState(t *testing.T) {
	m := newTestMachine(t, "s0", "s1")

	if err := m.SetStartingState("s1"); err != nil {
		t.Fatalf("SetStartingState: %v", err)
	}
	if got := m.StartingStateID(); got != "s1" {
		t.Errorf("StartingStateID = %q, want s1", got)
	}

	err := m.SetStartingState("missing")
	var refErr *InvalidReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected InvalidReferenceError, got %v", err)
	}
	if refErr.ID != "missing" {
		t.Errorf("error names id %q, want missing", refErr.ID)
	}
	// A failed set leaves the previous starting state in place.
	if got := m.StartingStateID(); got != "s1" {
		t.Errorf("StartingStateID after failed set = %q, want s1", got)
	}
}

func TestStateMachineAddTransition(t *testing.T) {
	m := newTestMachine(t, "s0", "s1")

	if err := m.AddTransition(Transition{SourceID: "s0", TargetID: "s1", RuleName: "r"}); err != nil {
		t.Fatalf("AddTransition: %v", err)
	}

	var refErr *InvalidReferenceError
	if err := m.AddTransition(Transition{SourceID: "nope", TargetID: "s1"}); !errors.As(err, &refErr) {
		t.Errorf("missing source: expected InvalidReferenceError, got %v", err)
	}
	if err := m.AddTransition(Transition{SourceID: "s0", TargetID: "nope"}); !errors.As(err, &refErr) {
		t.Errorf("missing target: expected InvalidReferenceError, got %v", err)
	}

	if got := m.TransitionCount(); got != 1 {
		t.Errorf("TransitionCount = %d, want 1 (failed adds must not record)", got)
	}
}

func TestStateMachineValidate(t *testing.T) {
	empty := NewStateMachine()
	if empty.IsValid() {
		t.Error("empty machine must not be valid")
	}

	m := newTestMachine(t, "s0")
	if m.IsValid() {
		t.Error("machine without starting state must not be valid")
	}

	if err := m.SetStartingState("s0"); err != nil {
		t.Fatalf("SetStartingState: %v", err)
	}
	if !m.IsValid() {
		t.Errorf("machine should be valid: %v", m.Validate())
	}
}

func TestStateMachineClone(t *testing.T) {
	m := newTestMachine(t, "s0", "s1")
	if err := m.SetStartingState("s0"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddTransition(Transition{SourceID: "s0", TargetID: "s1", RuleName: "r"}); err != nil {
		t.Fatal(err)
	}

	c := m.Clone()
	if c.ID() == m.ID() {
		t.Error("clone should have a fresh machine id")
	}
	if c.StartingStateID() != "s0" || c.StateCount() != 2 || c.TransitionCount() != 1 {
		t.Error("clone does not preserve structure")
	}

	// Tagging the clone must not touch the original.
	cs, _ := c.State("s1")
	cs.Attributes["tag"] = BoolValue(true)
	os, _ := m.State("s1")
	if len(os.Attributes) != 0 {
		t.Error("clone state shares attribute storage with original")
	}
}

func TestStateMachineStateIDsOrder(t *testing.T) {
	m := newTestMachine(t, "s0", "s1", "s2")
	ids := m.StateIDs()
	want := []string{"s0", "s1", "s2"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("StateIDs = %v, want %v", ids, want)
		}
	}
}
