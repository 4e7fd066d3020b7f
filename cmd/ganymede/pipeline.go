package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"mercator-hq/ganymede/pkg/definition"
	"mercator-hq/ganymede/pkg/explorer"
	"mercator-hq/ganymede/pkg/export"
	"mercator-hq/ganymede/pkg/expr"
	"mercator-hq/ganymede/pkg/filter"
	"mercator-hq/ganymede/pkg/machine"
)

// generateMachine runs the full pipeline for one definition file:
// load, compile, explore, and (unless skipFilters) tag and prune with
// the definition's filter rules.
func generateMachine(logger *slog.Logger, path string, skipFilters bool) (*machine.StateMachine, *definition.Artifacts, error) {
	doc, err := definition.NewLoader().Load(path)
	if err != nil {
		return nil, nil, err
	}

	evaluator := expr.NewEvaluator()
	art, err := definition.Compile(doc, evaluator)
	if err != nil {
		return nil, nil, err
	}

	m, err := explorer.New(logger).Build(art.Initial, art.Rules, art.Exploration)
	if err != nil {
		return nil, nil, err
	}

	if !skipFilters && len(art.Filters.Filters) > 0 {
		selected, tagged, err := filter.NewEngine(evaluator, logger).Apply(m, &art.Filters)
		if err != nil {
			return nil, nil, err
		}

		m, err = filter.NewPathFilter(logger).Apply(tagged, selected)
		if err != nil {
			return nil, nil, err
		}
	}

	return m, art, nil
}

// writeMachine exports the machine in the given format to the output
// path, or to stdout when path is "-" or empty.
func writeMachine(m *machine.StateMachine, format export.Format, path string) error {
	exporter, err := export.New(format)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return exporter.Export(w, m)
}
