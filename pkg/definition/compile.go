package definition

import (
	"fmt"

	"mercator-hq/ganymede/pkg/explorer"
	"mercator-hq/ganymede/pkg/expr"
	"mercator-hq/ganymede/pkg/filter"
	"mercator-hq/ganymede/pkg/machine"
	"mercator-hq/ganymede/pkg/rule"
)

// Artifacts is the compiled form of a definition document, ready to
// feed into explorer.Builder and filter.Engine.
type Artifacts struct {
	Name        string
	Initial     *machine.State
	Rules       []rule.Rule
	Exploration explorer.Config
	Filters     filter.Definition
}

// Compile converts a validated document into typed artifacts. All
// expressions are parsed here, so a malformed rule or filter fails the
// whole compilation before any exploration starts.
func Compile(doc *Document, evaluator *expr.Evaluator) (*Artifacts, error) {
	if doc == nil {
		return nil, &machine.ArgumentError{Name: "doc", Message: "document must not be nil"}
	}
	if evaluator == nil {
		evaluator = expr.NewEvaluator()
	}

	initial := machine.NewState(nil)
	for name, raw := range doc.Machine.Initial.Variables {
		v, err := machine.ValueFromAny(raw)
		if err != nil {
			return nil, errAt("", "machine.initial.variables."+name, "%v", err)
		}
		initial.Variables[name] = v
	}

	rules := make([]rule.Rule, 0, len(doc.Rules))
	for i, r := range doc.Rules {
		dr, err := rule.NewDeclarativeRule(r.Name, r.Condition, r.Transform, evaluator)
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		rules = append(rules, dr)
	}

	cfg := explorer.DefaultConfig()
	cfg.MaxStates = doc.Exploration.MaxStates
	cfg.MaxDepth = doc.Exploration.MaxDepth
	if doc.Exploration.Strategy != "" {
		cfg.Strategy = explorer.Strategy(doc.Exploration.Strategy)
	}

	filters := filter.Definition{}
	for i, f := range doc.Filters {
		attrs := make(map[string]machine.Value, len(f.Attributes))
		for name, raw := range f.Attributes {
			v, err := machine.ValueFromAny(raw)
			if err != nil {
				return nil, errAt("", fmt.Sprintf("filters[%d].attributes.%s", i, name), "%v", err)
			}
			attrs[name] = v
		}
		filters.Filters = append(filters.Filters, filter.Rule{
			Condition:  f.Condition,
			Attributes: attrs,
		})
	}

	return &Artifacts{
		Name:        doc.Name,
		Initial:     initial,
		Rules:       rules,
		Exploration: cfg,
		Filters:     filters,
	}, nil
}
