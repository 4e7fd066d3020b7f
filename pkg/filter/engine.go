package filter

import (
	"io"
	"log/slog"
	"sort"

	"mercator-hq/ganymede/pkg/expr"
	"mercator-hq/ganymede/pkg/machine"
)

// StateIDVariable is the reserved pseudo-variable bound to a state's
// own id while its filter conditions are evaluated, so conditions like
// "[stateId] == 's3'" can select states structurally.
const StateIDVariable = "stateId"

// Rule is one filter entry: states matching the condition are selected
// and tagged with the attributes.
type Rule struct {
	// Condition is a boolean expression over the state's variables
	// plus the reserved stateId pseudo-variable. It is evaluated
	// leniently, so referencing a variable a state does not carry
	// compares against null rather than failing.
	Condition string `yaml:"condition"`

	// Attributes are merged into a matching state's attribute map.
	Attributes map[string]machine.Value `yaml:"attributes"`
}

// Definition is an ordered filter rule list. Order matters: when two
// matching rules write the same attribute key, the later rule wins.
type Definition struct {
	Filters []Rule `yaml:"filters"`
}

// Engine evaluates filter definitions over built machines.
type Engine struct {
	evaluator *expr.Evaluator
	logger    *slog.Logger
}

// NewEngine creates a filter engine. A nil logger discards events.
func NewEngine(evaluator *expr.Evaluator, logger *slog.Logger) *Engine {
	if evaluator == nil {
		evaluator = expr.NewEvaluator()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{evaluator: evaluator, logger: logger}
}

// Apply evaluates every filter rule against every state. It returns
// the sorted ids of matching states and a new machine in which each
// matching state's attributes have been merged with the rules'
// attributes, in rule order. States, transitions, and the starting id
// are unchanged; nothing is pruned — compose with PathFilter for that.
//
// A malformed condition aborts the whole call with an EvalError; no
// partially tagged machine is returned.
func (e *Engine) Apply(m *machine.StateMachine, def *Definition) ([]string, *machine.StateMachine, error) {
	if m == nil {
		return nil, nil, &machine.ArgumentError{Name: "machine", Message: "machine cannot be nil"}
	}
	if def == nil {
		return nil, nil, &machine.ArgumentError{Name: "definition", Message: "filter definition cannot be nil"}
	}

	// Conditions are parsed once up front so a malformed rule fails
	// before any state is tagged.
	conditions := make([]*expr.Node, len(def.Filters))
	for i, f := range def.Filters {
		node, err := expr.Parse(f.Condition)
		if err != nil {
			return nil, nil, err
		}
		conditions[i] = node
	}

	out := m.Clone()
	selected := make(map[string]bool)

	for _, id := range out.StateIDs() {
		s, _ := out.State(id)

		scope := make(map[string]machine.Value, len(s.Variables)+1)
		for name, v := range s.Variables {
			scope[name] = v
		}
		scope[StateIDVariable] = machine.StringValue(id)

		for i, f := range def.Filters {
			matched, err := e.evaluator.EvaluateNodeBoolean(conditions[i], scope, true)
			if err != nil {
				return nil, nil, err
			}
			if !matched {
				continue
			}

			selected[id] = true
			for name, v := range f.Attributes {
				s.Attributes[name] = v
			}
			e.logger.Debug("filter matched",
				"state_id", id,
				"condition", f.Condition,
			)
		}
	}

	ids := make([]string, 0, len(selected))
	for id := range selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	e.logger.Info("filter definition applied",
		"filters", len(def.Filters),
		"states", out.StateCount(),
		"selected", len(ids),
	)
	return ids, out, nil
}
