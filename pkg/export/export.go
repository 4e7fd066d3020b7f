package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"mercator-hq/ganymede/pkg/machine"
)

// Format identifies an output format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
	FormatGraphML Format = "graphml"
)

// Exporter renders a state machine to a writer.
type Exporter interface {
	// Format returns the format this exporter produces.
	Format() Format

	// Export writes the machine to w.
	Export(w io.Writer, m *machine.StateMachine) error
}

// New returns the exporter for the given format.
func New(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return &JSONExporter{Indent: "  "}, nil
	case FormatDOT:
		return &DOTExporter{}, nil
	case FormatMermaid:
		return &MermaidExporter{}, nil
	case FormatGraphML:
		return &GraphMLExporter{}, nil
	}
	return nil, &machine.ArgumentError{
		Name:    "format",
		Message: fmt.Sprintf("unknown format %q, must be one of %s", format, strings.Join(FormatNames(), ", ")),
	}
}

// FormatNames returns the supported format names in sorted order.
func FormatNames() []string {
	names := []string{
		string(FormatDOT),
		string(FormatGraphML),
		string(FormatJSON),
		string(FormatMermaid),
	}
	sort.Strings(names)
	return names
}

// sortedNames returns the keys of a value map in sorted order.
func sortedNames(values map[string]machine.Value) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// summarize renders a value map as "a=1, b=x" with sorted names.
func summarize(values map[string]machine.Value) string {
	var sb strings.Builder
	for i, name := range sortedNames(values) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(values[name].String())
	}
	return sb.String()
}
