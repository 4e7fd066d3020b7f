package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/export"
)

var buildFlags struct {
	file      string
	output    string
	format    string
	noFilters bool
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate a state machine from a definition file",
	Long: `Generate a state machine by exhaustively exploring the state space of
a definition file.

The definition's rules are applied to every discovered state until no
new states remain (or the configured limits are reached). If the
definition declares filters, matching states are tagged with attributes
and the machine is pruned to the paths that reach them.

Examples:
  # Print the machine as JSON
  ganymede build --file counter.yaml

  # Write a Graphviz rendering
  ganymede build --file counter.yaml --format dot --output counter.dot

  # Skip the filter stage
  ganymede build --file counter.yaml --no-filters`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildFlags.file, "file", "f", "", "definition file (required)")
	buildCmd.Flags().StringVarP(&buildFlags.output, "output", "o", "-", "output file, - for stdout")
	buildCmd.Flags().StringVar(&buildFlags.format, "format", "json", "output format: json, dot, mermaid, graphml")
	buildCmd.Flags().BoolVar(&buildFlags.noFilters, "no-filters", false, "skip the definition's filter rules")
	_ = buildCmd.MarkFlagRequired("file")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadToolConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	m, _, err := generateMachine(logger, buildFlags.file, buildFlags.noFilters)
	if err != nil {
		return err
	}

	logger.Info("Machine generated",
		"definition", buildFlags.file,
		"states", m.StateCount(),
		"transitions", m.TransitionCount(),
	)

	return writeMachine(m, export.Format(buildFlags.format), buildFlags.output)
}
