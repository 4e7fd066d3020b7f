package definition

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/ganymede/pkg/expr"
	"mercator-hq/ganymede/pkg/machine"
)

const counterDoc = `
version: 1
name: counter
machine:
  initial:
    variables:
      count: 0
      label: start
exploration:
  strategy: bfs
  max_states: 100
rules:
  - name: increment
    condition: "[count] < 3"
    transform:
      count: "[count] + 1"
filters:
  - condition: "[count] == 3"
    attributes:
      terminal: true
`

func TestLoadBytes_Valid(t *testing.T) {
	doc, err := NewLoader().LoadBytes([]byte(counterDoc), "counter.yaml")
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}

	if doc.Name != "counter" {
		t.Errorf("Name = %q, want %q", doc.Name, "counter")
	}
	if doc.Exploration.Strategy != "bfs" {
		t.Errorf("Strategy = %q, want %q", doc.Exploration.Strategy, "bfs")
	}
	if doc.Exploration.MaxStates != 100 {
		t.Errorf("MaxStates = %d, want 100", doc.Exploration.MaxStates)
	}
	if len(doc.Rules) != 1 || doc.Rules[0].Name != "increment" {
		t.Fatalf("Rules = %+v, want one rule named increment", doc.Rules)
	}
	if len(doc.Filters) != 1 {
		t.Fatalf("Filters = %+v, want one filter", doc.Filters)
	}
}

func TestLoadBytes_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name:    "bad syntax",
			yaml:    "rules:\n  - name: [unclosed",
			wantMsg: "YAML parsing failed",
		},
		{
			name:    "unknown field",
			yaml:    "machinery:\n  initial: {}",
			wantMsg: "YAML parsing failed",
		},
		{
			name:    "bad version",
			yaml:    "version: 2",
			wantMsg: "unsupported version",
		},
		{
			name:    "negative max states",
			yaml:    "exploration:\n  max_states: -1",
			wantMsg: "exploration.max_states",
		},
		{
			name:    "negative max depth",
			yaml:    "exploration:\n  max_depth: -5",
			wantMsg: "exploration.max_depth",
		},
		{
			name:    "bad strategy",
			yaml:    "exploration:\n  strategy: random",
			wantMsg: "unknown strategy",
		},
		{
			name:    "rule without name",
			yaml:    "rules:\n  - condition: \"true\"\n    transform:\n      x: \"1\"",
			wantMsg: "rules[0].name",
		},
		{
			name:    "duplicate rule name",
			yaml:    "rules:\n  - name: r\n    condition: \"true\"\n    transform:\n      x: \"1\"\n  - name: r\n    condition: \"true\"\n    transform:\n      x: \"2\"",
			wantMsg: "duplicate rule name",
		},
		{
			name:    "rule without condition",
			yaml:    "rules:\n  - name: r\n    transform:\n      x: \"1\"",
			wantMsg: "rules[0].condition",
		},
		{
			name:    "rule without transform",
			yaml:    "rules:\n  - name: r\n    condition: \"true\"",
			wantMsg: "rules[0].transform",
		},
		{
			name:    "empty transform expression",
			yaml:    "rules:\n  - name: r\n    condition: \"true\"\n    transform:\n      x: \"\"",
			wantMsg: "rules[0].transform.x",
		},
		{
			name:    "filter without condition",
			yaml:    "filters:\n  - attributes:\n      terminal: true",
			wantMsg: "filters[0].condition",
		},
		{
			name:    "filter without attributes",
			yaml:    "filters:\n  - condition: \"true\"",
			wantMsg: "filters[0].attributes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().LoadBytes([]byte(tt.yaml), "test.yaml")
			if err == nil {
				t.Fatal("LoadBytes() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.yaml")
	if err := os.WriteFile(path, []byte(counterDoc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	doc, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Name != "counter" {
		t.Errorf("Name = %q, want %q", doc.Name, "counter")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to access file") {
		t.Errorf("error = %q, want access failure", err.Error())
	}
}

func TestLoad_FileTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.yaml")
	if err := os.WriteFile(path, []byte(counterDoc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := NewLoader().WithMaxFileSize(8).Load(path)
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error = %q, want size limit failure", err.Error())
	}
}

func TestCompile(t *testing.T) {
	doc, err := NewLoader().LoadBytes([]byte(counterDoc), "counter.yaml")
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}

	art, err := Compile(doc, expr.NewEvaluator())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if art.Name != "counter" {
		t.Errorf("Name = %q, want %q", art.Name, "counter")
	}
	if got := art.Initial.Variables["count"]; !got.Equal(machine.IntValue(0)) {
		t.Errorf("initial count = %v, want int 0", got)
	}
	if got := art.Initial.Variables["label"]; !got.Equal(machine.StringValue("start")) {
		t.Errorf("initial label = %v, want string %q", got, "start")
	}
	if len(art.Rules) != 1 || art.Rules[0].Name() != "increment" {
		t.Fatalf("Rules = %+v, want one rule named increment", art.Rules)
	}
	if art.Exploration.MaxStates != 100 {
		t.Errorf("MaxStates = %d, want 100", art.Exploration.MaxStates)
	}
	if len(art.Filters.Filters) != 1 {
		t.Fatalf("Filters = %+v, want one filter", art.Filters.Filters)
	}
	if got := art.Filters.Filters[0].Attributes["terminal"]; !got.Equal(machine.BoolValue(true)) {
		t.Errorf("filter attribute terminal = %v, want bool true", got)
	}
}

func TestCompile_BadExpression(t *testing.T) {
	doc := &Document{
		Rules: []RuleSection{
			{Name: "broken", Condition: "[count] <", Transform: map[string]string{"count": "1"}},
		},
	}

	_, err := Compile(doc, expr.NewEvaluator())
	if err == nil {
		t.Fatal("Compile() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "rules[0]") {
		t.Errorf("error = %q, want rule position", err.Error())
	}
}

func TestCompile_NilDocument(t *testing.T) {
	if _, err := Compile(nil, nil); err == nil {
		t.Fatal("Compile() expected error, got nil")
	}
}
