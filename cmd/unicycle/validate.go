package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unicycle-go/unicycle/config"
)

// validateCmd validates a scenario file without dispatching anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file",
	Long: `Validate a unicycle scenario file without dispatching anything.

This command parses the YAML and validates all fields. It's useful for
CI/CD pipelines or pre-run checks.

Exit codes:
  0 - Scenario is valid
  1 - Scenario is invalid (error details printed to stderr)

Example:
  unicycle validate -s scenario.yaml
  unicycle validate --scenario /etc/unicycle/scenario.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("scenario", "s", "", "path to scenario file (required)")
	_ = validateCmd.MarkFlagRequired("scenario")
}

func runValidate(cmd *cobra.Command, args []string) error {
	scenarioFile, _ := cmd.Flags().GetString("scenario")
	sc, err := config.Load(scenarioFile)
	if err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	initial := "store default"
	if sc.Initial != nil {
		initial = fmt.Sprintf("%d", *sc.Initial)
	}

	fmt.Printf("Scenario is valid!\n")
	fmt.Printf("  Name:     %s\n", sc.Name)
	fmt.Printf("  Initial:  %s\n", initial)
	fmt.Printf("  Strategy: %s\n", sc.Strategy)
	fmt.Printf("  Actions:  %d\n", len(sc.Actions))

	return nil
}
