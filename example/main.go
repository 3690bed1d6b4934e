// Command example demonstrates a counter store, a mirror store, and their
// composition into a combined store with a live subscription.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/unicycle-go/unicycle"
)

// Increment and Decrement are the demo's action vocabulary.
type Increment struct{}

func (Increment) Tag() string { return "increment" }

type Decrement struct{}

func (Decrement) Tag() string { return "decrement" }

// PairState is the combined state of the counter and its mirror.
type PairState struct {
	Counter int
	Mirror  int
}

// NewCounterStore counts up on increment and down on decrement.
func NewCounterStore(opts ...unicycle.Option[int]) (*unicycle.Store[int], error) {
	base := []unicycle.Option[int]{
		unicycle.WithDefaultState(0),
		unicycle.WithReducer(unicycle.Handle(func(state int, _ unicycle.Action) int {
			return state + 1
		}, "increment")),
		unicycle.WithReducer(unicycle.Handle(func(state int, _ unicycle.Action) int {
			return state - 1
		}, "decrement")),
	}
	return unicycle.New(append(base, opts...)...)
}

// NewMirrorStore moves in the opposite direction to the counter.
func NewMirrorStore(opts ...unicycle.Option[int]) (*unicycle.Store[int], error) {
	base := []unicycle.Option[int]{
		unicycle.WithDefaultState(0),
		unicycle.WithReducer(unicycle.Handle(func(state int, _ unicycle.Action) int {
			return state - 1
		}, "increment")),
		unicycle.WithReducer(unicycle.Handle(func(state int, _ unicycle.Action) int {
			return state + 1
		}, "decrement")),
	}
	return unicycle.New(append(base, opts...)...)
}

func combinePair(states unicycle.States) PairState {
	return PairState{
		Counter: unicycle.StateOf[int](states, "Counter"),
		Mirror:  unicycle.StateOf[int](states, "Mirror"),
	}
}

func main() {
	store, err := unicycle.NewCombined(combinePair,
		[]unicycle.Child{
			unicycle.StoreChild("Counter", NewCounterStore),
			unicycle.StoreChild("Mirror", NewMirrorStore),
		},
	)
	if err != nil {
		slog.Error("failed to create combined store", "error", err)
		os.Exit(1)
	}

	sub := store.Subscribe(unicycle.WithStrategy(unicycle.Every))
	defer sub.Close()

	// consume notifications as they arrive
	done := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go func() {
		defer close(done)
		for {
			state, action, err := sub.Next(ctx)
			if err != nil {
				return
			}
			fmt.Printf("  %-10s -> counter=%2d mirror=%2d\n",
				action.Tag(), state.Counter, state.Mirror)
		}
	}()

	for _, action := range []unicycle.Action{
		Increment{}, Increment{}, Decrement{}, Increment{},
	} {
		store.Dispatch(action)
	}

	<-done
	fmt.Printf("final state: %+v\n", store.State())
}
