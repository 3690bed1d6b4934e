package main

import (
	"github.com/unicycle-go/unicycle"
	"github.com/unicycle-go/unicycle/config"
)

// Increment is the action dispatched for an "increment" scenario step.
type Increment struct{}

// Tag implements [unicycle.Action].
func (Increment) Tag() string { return string(config.OpIncrement) }

// Decrement is the action dispatched for a "decrement" scenario step.
type Decrement struct{}

// Tag implements [unicycle.Action].
func (Decrement) Tag() string { return string(config.OpDecrement) }

// Add is the action dispatched for an "add" scenario step.
type Add struct {
	Amount int
}

// Tag implements [unicycle.Action].
func (Add) Tag() string { return string(config.OpAdd) }

// newCounterStore builds the counter store the CLI replays scenarios
// against. The default state is zero; a scenario's initial value overrides
// it via the passed-through options.
func newCounterStore(opts ...unicycle.Option[int]) (*unicycle.Store[int], error) {
	base := []unicycle.Option[int]{
		unicycle.WithDefaultState(0),
		unicycle.WithReducer(unicycle.Handle(func(state int, _ unicycle.Action) int {
			return state + 1
		}, string(config.OpIncrement))),
		unicycle.WithReducer(unicycle.Handle(func(state int, _ unicycle.Action) int {
			return state - 1
		}, string(config.OpDecrement))),
		unicycle.WithReducer(unicycle.Handle(func(state int, action unicycle.Action) int {
			return state + action.(Add).Amount
		}, string(config.OpAdd))),
	}
	return unicycle.New(append(base, opts...)...)
}

// stepAction converts a scenario step to the action it dispatches.
func stepAction(step config.Step) unicycle.Action {
	switch step.Op {
	case config.OpDecrement:
		return Decrement{}
	case config.OpAdd:
		return Add{Amount: step.Amount}
	default:
		return Increment{}
	}
}
