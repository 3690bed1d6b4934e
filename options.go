package unicycle

import (
	"errors"
	"log/slog"
)

// storeConfig holds mutable state during store construction.
type storeConfig[S any] struct {
	initial      S
	hasInitial   bool
	defaultState S
	hasDefault   bool
	registry     []Registration[S]
	logger       *slog.Logger
}

// Option is a function that configures a store during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] and [NewCombined] in a type-safe,
// extensible way. Options return an error if validation fails.
//
// Built-in options: [WithInitialState], [WithDefaultState], [WithReducer],
// [WithLogger].
type Option[S any] func(*storeConfig[S]) error

// WithInitialState sets the store's initial state explicitly.
//
// An explicit initial state always takes precedence over a default supplied
// with [WithDefaultState], regardless of option order.
//
// Example:
//
//	store, err := unicycle.New(unicycle.WithInitialState(42))
func WithInitialState[S any](state S) Option[S] {
	return func(cfg *storeConfig[S]) error {
		cfg.initial = state
		cfg.hasInitial = true
		return nil
	}
}

// WithDefaultState sets the state the store starts from when no explicit
// initial state is supplied.
//
// Store constructors typically bake in a default and pass caller options
// through, so callers can override it:
//
//	func NewCounter(opts ...unicycle.Option[int]) (*unicycle.Store[int], error) {
//	    base := []unicycle.Option[int]{
//	        unicycle.WithDefaultState(0),
//	        unicycle.WithReducer(unicycle.Handle(increment, "increment")),
//	    }
//	    return unicycle.New(append(base, opts...)...)
//	}
func WithDefaultState[S any](state S) Option[S] {
	return func(cfg *storeConfig[S]) error {
		cfg.defaultState = state
		cfg.hasDefault = true
		return nil
	}
}

// WithReducer appends a reducer registration to the store's registry.
//
// Can be called multiple times; registry order is the option order, and
// dispatch applies matching reducers in exactly that order. The registry is
// fixed once [New] returns.
//
// Returns an error if the registration has a nil handler or no tags.
func WithReducer[S any](reg Registration[S]) Option[S] {
	return func(cfg *storeConfig[S]) error {
		if reg.handler == nil {
			return errors.New("reducer handler cannot be nil")
		}
		if len(reg.tags) == 0 {
			return errors.New("reducer must be registered for at least one action tag")
		}
		cfg.registry = append(cfg.registry, reg)
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the store.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(cfg *storeConfig[S]) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
