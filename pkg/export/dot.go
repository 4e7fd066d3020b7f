package export

import (
	"fmt"
	"io"
	"strings"

	"mercator-hq/ganymede/pkg/machine"
)

// DOTExporter writes the machine as a Graphviz digraph. State nodes
// are Mrecord shapes whose labels carry the variable bindings; the
// starting state gets a double border.
type DOTExporter struct{}

// Format returns FormatDOT.
func (e *DOTExporter) Format() Format { return FormatDOT }

// Export writes the machine to w.
func (e *DOTExporter) Export(w io.Writer, m *machine.StateMachine) error {
	if m == nil {
		return &machine.ArgumentError{Name: "m", Message: "machine must not be nil"}
	}

	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("\tnode [shape=Mrecord]\n")
	sb.WriteString("\trankdir=\"LR\"\n")

	for _, id := range m.StateIDs() {
		s, _ := m.State(id)
		label := escapeDOT(id)
		if vars := summarize(s.Variables); vars != "" {
			label += "|" + escapeDOT(vars)
		}
		if attrs := summarize(s.Attributes); attrs != "" {
			label += "|" + escapeDOT(attrs)
		}

		extra := ""
		if id == m.StartingStateID() {
			extra = ", peripheries=2"
		}
		fmt.Fprintf(&sb, "\t%q [label=\"%s\"%s];\n", id, label, extra)
	}

	for _, t := range m.Transitions() {
		fmt.Fprintf(&sb, "\t%q -> %q [label=\"%s\"];\n", t.SourceID, t.TargetID, escapeDOT(t.RuleName))
	}

	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// escapeDOT escapes characters that are significant inside DOT record
// labels.
func escapeDOT(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		"<", "\\<",
		">", "\\>",
		"\n", "\\n",
	)
	return r.Replace(s)
}
