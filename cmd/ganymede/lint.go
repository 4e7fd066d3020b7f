package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/definition"
	"mercator-hq/ganymede/pkg/expr"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate definition files",
	Long: `Validate machine definition files for syntax and semantic errors.

The lint command parses definition files and performs full validation:
  - YAML syntax validation
  - Definition structure validation
  - Expression syntax validation (conditions and transforms)

Examples:
  # Lint single file
  ganymede lint --file counter.yaml

  # Lint directory
  ganymede lint --dir definitions/

  # JSON output for CI/CD
  ganymede lint --file counter.yaml --format json`,
	RunE: lintDefinitions,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "definition file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of definition files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// ValidationResult represents the validation result for a single
// definition file.
type ValidationResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func lintDefinitions(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}

	if lintFlags.dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(lintFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("failed to list definition files: %w", err)
			}
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no definition files found")
	}

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateDefinitionFile(file))
	}

	if lintFlags.format == "json" {
		return outputJSON(results)
	}
	return outputText(results)
}

// validateDefinitionFile loads and compiles one file so that both
// structural and expression errors are reported.
func validateDefinitionFile(path string) ValidationResult {
	result := ValidationResult{File: path}

	doc, err := definition.NewLoader().Load(path)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if _, err := definition.Compile(doc, expr.NewEvaluator()); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Valid = true
	return result
}

func outputJSON(results []ValidationResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return err
	}
	return exitOnFailures(results)
}

func outputText(results []ValidationResult) error {
	for _, r := range results {
		if r.Valid {
			fmt.Printf("OK    %s\n", r.File)
		} else {
			fmt.Printf("FAIL  %s\n      %s\n", r.File, r.Error)
		}
	}
	return exitOnFailures(results)
}

func exitOnFailures(results []ValidationResult) error {
	failures := 0
	for _, r := range results {
		if !r.Valid {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d definition files failed validation", failures, len(results))
	}
	return nil
}
