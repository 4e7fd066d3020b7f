package rule

import (
	"mercator-hq/ganymede/pkg/expr"
	"mercator-hq/ganymede/pkg/machine"
)

// DeclarativeRule is a rule described entirely by expressions: a
// condition gating availability and one transform expression per
// variable it rewrites. This is the rule form definition files
// produce.
type DeclarativeRule struct {
	name       string
	condition  *expr.Node
	transforms map[string]*expr.Node
	evaluator  *expr.Evaluator
}

// NewDeclarativeRule builds a declarative rule. Name, condition, and
// transforms are all required; the condition and every transform are
// parsed here, so a malformed expression fails rule construction
// rather than surfacing mid-exploration.
func NewDeclarativeRule(name, condition string, transforms map[string]string, evaluator *expr.Evaluator) (*DeclarativeRule, error) {
	if name == "" {
		return nil, &machine.ArgumentError{Name: "name", Message: "rule name cannot be empty"}
	}
	if condition == "" {
		return nil, &machine.ArgumentError{Name: "condition", Message: "rule condition cannot be empty"}
	}
	if transforms == nil {
		return nil, &machine.ArgumentError{Name: "transforms", Message: "rule transforms cannot be nil"}
	}
	if evaluator == nil {
		return nil, &machine.ArgumentError{Name: "evaluator", Message: "evaluator cannot be nil"}
	}

	condNode, err := expr.Parse(condition)
	if err != nil {
		return nil, err
	}

	transformNodes := make(map[string]*expr.Node, len(transforms))
	for variable, source := range transforms {
		if variable == "" {
			return nil, &machine.ArgumentError{Name: "transforms", Message: "transform variable name cannot be empty"}
		}
		node, err := expr.Parse(source)
		if err != nil {
			return nil, err
		}
		transformNodes[variable] = node
	}

	return &DeclarativeRule{
		name:       name,
		condition:  condNode,
		transforms: transformNodes,
		evaluator:  evaluator,
	}, nil
}

// Name returns the rule's transition label.
func (r *DeclarativeRule) Name() string {
	return r.name
}

// IsAvailable evaluates the condition leniently against the state's
// variables, so a condition over a variable no rule has introduced yet
// compares against null instead of failing.
func (r *DeclarativeRule) IsAvailable(s *machine.State) (bool, error) {
	return r.evaluator.EvaluateNodeBoolean(r.condition, s.Variables, true)
}

// Execute clones the state and applies every transform. All transforms
// are evaluated against the ORIGINAL variable scope before any result
// is written, so transforms never observe each other's output within a
// single Execute call.
func (r *DeclarativeRule) Execute(s *machine.State) (*machine.State, error) {
	next := s.Clone()
	for variable, node := range r.transforms {
		v, err := r.evaluator.EvaluateNode(node, s.Variables, true)
		if err != nil {
			return nil, err
		}
		next.Variables[variable] = v
	}
	return next, nil
}
