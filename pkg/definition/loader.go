package definition

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader reads and validates machine definition files.
type Loader struct {
	maxFileSize int64
}

// NewLoader creates a loader with default configuration.
func NewLoader() *Loader {
	return &Loader{
		maxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// WithMaxFileSize sets the maximum definition file size.
func (l *Loader) WithMaxFileSize(size int64) *Loader {
	l.maxFileSize = size
	return l
}

// Load reads the definition file at path and returns the validated
// document.
func (l *Loader) Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errAt(path, "", "failed to access file: %v", err)
	}
	if info.Size() > l.maxFileSize {
		return nil, errAt(path, "", "file size %d exceeds maximum %d bytes", info.Size(), l.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errAt(path, "", "failed to read file: %v", err)
	}

	return l.LoadBytes(data, path)
}

// LoadBytes parses and validates a definition document. The source
// name is used in error messages only and may be empty.
func (l *Loader) LoadBytes(data []byte, source string) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &Error{
			Source:     source,
			Message:    fmt.Sprintf("YAML parsing failed: %v", err),
			Suggestion: "check YAML syntax (indentation, colons, quotes)",
		}
	}

	if err := validate(&doc, source); err != nil {
		return nil, err
	}
	return &doc, nil
}

// validate performs structural checks. Expression syntax is not
// checked here; Compile reports those with full positions.
func validate(doc *Document, source string) error {
	if doc.Version != 0 && doc.Version != 1 {
		return errAt(source, "version", "unsupported version %d", doc.Version)
	}

	if doc.Exploration.MaxStates < 0 {
		return &Error{
			Source:     source,
			Path:       "exploration.max_states",
			Message:    fmt.Sprintf("must not be negative, got %d", doc.Exploration.MaxStates),
			Suggestion: "use 0 for unlimited",
		}
	}
	if doc.Exploration.MaxDepth < 0 {
		return &Error{
			Source:     source,
			Path:       "exploration.max_depth",
			Message:    fmt.Sprintf("must not be negative, got %d", doc.Exploration.MaxDepth),
			Suggestion: "use 0 for unlimited",
		}
	}
	switch doc.Exploration.Strategy {
	case "", "bfs", "dfs":
	default:
		return errAt(source, "exploration.strategy", "unknown strategy %q, must be bfs or dfs", doc.Exploration.Strategy)
	}

	seen := make(map[string]int, len(doc.Rules))
	for i, r := range doc.Rules {
		path := fmt.Sprintf("rules[%d]", i)
		if r.Name == "" {
			return errAt(source, path+".name", "rule name is required")
		}
		if prev, dup := seen[r.Name]; dup {
			return errAt(source, path+".name", "duplicate rule name %q, first defined at rules[%d]", r.Name, prev)
		}
		seen[r.Name] = i
		if r.Condition == "" {
			return errAt(source, path+".condition", "rule condition is required")
		}
		if len(r.Transform) == 0 {
			return errAt(source, path+".transform", "rule must assign at least one variable")
		}
		for name, text := range r.Transform {
			if name == "" {
				return errAt(source, path+".transform", "transform variable name must not be empty")
			}
			if text == "" {
				return errAt(source, path+".transform."+name, "transform expression must not be empty")
			}
		}
	}

	for i, f := range doc.Filters {
		path := fmt.Sprintf("filters[%d]", i)
		if f.Condition == "" {
			return errAt(source, path+".condition", "filter condition is required")
		}
		if len(f.Attributes) == 0 {
			return errAt(source, path+".attributes", "filter must set at least one attribute")
		}
		for name := range f.Attributes {
			if name == "" {
				return errAt(source, path+".attributes", "attribute name must not be empty")
			}
		}
	}

	return nil
}
