// Package main is the entry point for the unicycle CLI.
//
// Unicycle is primarily a library (SDK), but the CLI lets you drive a
// counter store from a declarative YAML scenario, which is useful for
// demonstrating dispatch and subscription behaviour without writing any Go.
//
// Usage:
//
//	unicycle replay -s scenario.yaml   # Dispatch a scripted scenario
//	unicycle validate -s scenario.yaml # Validate a scenario file
//	unicycle version                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "unicycle",
	Short: "A reactive state container",
	Long: `Unicycle is a small reactive state container: actions are dispatched
into a store, folded through reducers, and fanned out to subscribers.

The CLI drives a counter store from a YAML scenario file.

Quick start:
  1. Create a scenario file (scenario.yaml)
  2. Run: unicycle replay -s scenario.yaml

Example scenario:
  name: warmup
  initial: 10
  strategy: every
  actions:
    - op: increment
    - op: add
      amount: 5`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this unicycle binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("unicycle %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
