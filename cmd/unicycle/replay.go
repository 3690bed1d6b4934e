package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/unicycle-go/unicycle"
	"github.com/unicycle-go/unicycle/config"
)

// drainTimeout bounds the wait for each buffered notification during replay.
// Dispatch completes fan-out synchronously, so this only trips if something
// is badly wrong.
const drainTimeout = 5 * time.Second

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// replayCmd dispatches a scripted scenario through a counter store.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a scenario through a counter store",
	Long: `Replay a scenario file through a counter store.

The command will:
  - Load the scenario from the specified YAML file
  - Build a counter store seeded with the scenario's initial value
  - Subscribe with the scenario's strategy (latest or every)
  - Dispatch each scripted action in order
  - Log every notification the subscription delivers

Example:
  unicycle replay -s scenario.yaml
  unicycle replay --scenario /etc/unicycle/scenario.yaml`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringP("scenario", "s", "", "path to scenario file (required)")
	_ = replayCmd.MarkFlagRequired("scenario")
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	scenarioFile, _ := cmd.Flags().GetString("scenario")
	sc, err := config.Load(scenarioFile)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	logger.Info("scenario loaded",
		"name", sc.Name,
		"actions", len(sc.Actions),
		"strategy", sc.Strategy,
	)

	var opts []unicycle.Option[int]
	opts = append(opts, unicycle.WithLogger[int](logger))
	if sc.Initial != nil {
		opts = append(opts, unicycle.WithInitialState(*sc.Initial))
	}

	store, err := newCounterStore(opts...)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	strategy := unicycle.Latest
	if sc.Strategy == "every" {
		strategy = unicycle.Every
	}

	sub := store.Subscribe(unicycle.WithStrategy(strategy))
	defer sub.Close()

	for _, step := range sc.Actions {
		store.Dispatch(stepAction(step))
	}

	// everything is buffered by now; drain what the strategy kept
	for sub.Pending() > 0 {
		ctx, cancel := context.WithTimeout(cmd.Context(), drainTimeout)
		state, action, err := sub.Next(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to read notification: %w", err)
		}
		logger.Info("notification",
			"scenario", sc.Name,
			"action", action.Tag(),
			"state", state,
		)
	}

	fmt.Printf("Scenario %q complete: final state %d\n", sc.Name, store.State())
	return nil
}
