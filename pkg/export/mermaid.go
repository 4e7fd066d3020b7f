package export

import (
	"fmt"
	"io"
	"strings"

	"mercator-hq/ganymede/pkg/machine"
)

// MermaidExporter writes the machine as a Mermaid stateDiagram-v2
// document. Each state is aliased to a label that shows its variable
// bindings, and the starting state is marked with the [*] entry arrow.
type MermaidExporter struct{}

// Format returns FormatMermaid.
func (e *MermaidExporter) Format() Format { return FormatMermaid }

// Export writes the machine to w.
func (e *MermaidExporter) Export(w io.Writer, m *machine.StateMachine) error {
	if m == nil {
		return &machine.ArgumentError{Name: "m", Message: "machine must not be nil"}
	}

	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	for _, id := range m.StateIDs() {
		s, _ := m.State(id)
		label := id
		if vars := summarize(s.Variables); vars != "" {
			label = fmt.Sprintf("%s (%s)", id, vars)
		}
		fmt.Fprintf(&sb, "\t%s : %s\n", id, escapeMermaid(label))
	}

	if start := m.StartingStateID(); start != "" {
		fmt.Fprintf(&sb, "\t[*] --> %s\n", start)
	}

	for _, t := range m.Transitions() {
		fmt.Fprintf(&sb, "\t%s --> %s : %s\n", t.SourceID, t.TargetID, escapeMermaid(t.RuleName))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// escapeMermaid strips characters that break Mermaid labels.
func escapeMermaid(s string) string {
	r := strings.NewReplacer(
		"\n", " ",
		":", "&#58;",
		";", "&#59;",
	)
	return r.Replace(s)
}
