package unicycle

import (
	"log/slog"

	"github.com/google/uuid"
)

// Store is a reactive state container.
//
// A Store owns a single state value of type S, replaced wholesale by
// [Store.Dispatch] and readable through [Store.State]. There is no other
// mutation path: reducers are held in a private registry built once at
// construction, so application code can neither call one directly nor
// re-register one later.
//
// Dispatch assumes a single writer. Calling Dispatch concurrently on the
// same store from multiple goroutines requires external serialization; the
// store provides no internal locking around state replacement or registry
// iteration. Subscribe and Subscription.Close are safe from any goroutine.
type Store[S any] struct {
	id       uuid.UUID
	state    S
	registry []Registration[S]
	subs     *subscriberSet[S]
	logger   *slog.Logger
}

// New creates a [Store] with the given options.
//
// An initial state must be resolvable: supply [WithInitialState], or
// [WithDefaultState], or both (the explicit initial state wins). Returns
// [ErrNoInitialState] if neither is present, or the first option validation
// error.
//
// Example:
//
//	store, err := unicycle.New(
//	    unicycle.WithDefaultState(0),
//	    unicycle.WithReducer(unicycle.Handle(increment, "increment")),
//	    unicycle.WithReducer(unicycle.Handle(decrement, "decrement")),
//	)
func New[S any](opts ...Option[S]) (*Store[S], error) {
	cfg := &storeConfig[S]{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	var state S
	switch {
	case cfg.hasInitial:
		state = cfg.initial
	case cfg.hasDefault:
		state = cfg.defaultState
	default:
		return nil, ErrNoInitialState
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store[S]{
		id:       uuid.New(),
		state:    state,
		registry: cfg.registry,
		subs:     newSubscriberSet[S](),
		logger:   logger,
	}, nil
}

// ID returns the unique identifier of this store, as carried in log output.
func (s *Store[S]) ID() uuid.UUID {
	return s.id
}

// State returns the current state. State changes only through
// [Store.Dispatch].
func (s *Store[S]) State() S {
	return s.state
}

// Dispatch applies the action to the store and returns the resulting state.
//
// Starting from the current state, every registered reducer whose tag set
// matches the action runs in registration order; each one's result becomes
// the working state seen by the next, and is committed immediately, so a
// reducer that panics leaves the results of earlier reducers in the same
// dispatch applied. If no reducer matches, the state is unchanged.
//
// After reducer application, every live subscription is notified with the
// resulting (state, action) pair, also when nothing matched. Dispatch is
// fully synchronous: reducers and notification fan-out complete before it
// returns.
func (s *Store[S]) Dispatch(action Action) S {
	state := s.state
	matched := 0
	for _, reg := range s.registry {
		if reg.matches(action.Tag()) {
			state = reg.handler(state, action)
			s.state = state
			matched++
		}
	}

	s.logger.Debug("action dispatched",
		"store", s.id,
		"action", action.Tag(),
		"reducers", matched,
	)

	s.subs.notify(state, action)
	return state
}

// Subscribe attaches a new subscription to the store.
//
// The subscription receives a notification for every subsequent dispatch,
// buffered per its strategy ([Latest] by default; see [WithStrategy]). It
// has no visibility into dispatches from before it was attached. The caller
// must call [Subscription.Close] when done:
//
//	sub := store.Subscribe()
//	defer sub.Close()
func (s *Store[S]) Subscribe(opts ...SubscribeOption) *Subscription[S] {
	return s.subs.subscribe(s.logger, s.id, opts...)
}

// dispatchAny and stateAny let a combined store drive children of
// heterogeneous state types.
func (s *Store[S]) dispatchAny(action Action) any {
	return s.Dispatch(action)
}

func (s *Store[S]) stateAny() any {
	return s.state
}
