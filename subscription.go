package unicycle

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/unicycle-go/unicycle/internal/notify"
)

// Strategy is the delivery guarantee for a subscription's buffer.
type Strategy string

const (
	// Latest delivers the most recent notification. Guarantees that the
	// store's state matches the state in the notification as of the next
	// read, but intermediate transitions may be missed.
	Latest Strategy = "latest"

	// Every delivers every notification in dispatch order with none dropped.
	// The state in a notification may be stale by the time it is read: the
	// store may have transitioned again.
	Every Strategy = "every"
)

// String returns the string representation of the strategy.
// This implements the fmt.Stringer interface.
func (s Strategy) String() string {
	return string(s)
}

// Notification pairs a state snapshot with the action that produced it.
type Notification[S any] struct {
	// State is the store's state immediately after the dispatch completed.
	State S

	// Action is the action that was dispatched.
	Action Action
}

// subscribeConfig holds mutable state during Subscribe.
type subscribeConfig struct {
	strategy Strategy
}

// SubscribeOption configures a subscription at creation time.
type SubscribeOption func(*subscribeConfig)

// WithStrategy selects the delivery strategy for the subscription.
// Defaults to [Latest] if not specified.
//
// Example:
//
//	sub := store.Subscribe(unicycle.WithStrategy(unicycle.Every))
//	defer sub.Close()
func WithStrategy(strategy Strategy) SubscribeOption {
	return func(cfg *subscribeConfig) {
		cfg.strategy = strategy
	}
}

// Subscription is a scoped, asynchronous consumer of state-change
// notifications from one store.
//
// A subscription receives a notification for every dispatch that completes
// while it is attached, buffered per its [Strategy]. It sees nothing from
// before it was created. Callers must call [Subscription.Close] when done to
// detach it from the store.
type Subscription[S any] struct {
	id       uuid.UUID
	strategy Strategy
	ch       *notify.Channel[Notification[S]]
	detach   func()
	once     sync.Once
}

// ID returns the unique identifier of this subscription, as carried in the
// store's log output.
func (s *Subscription[S]) ID() uuid.UUID {
	return s.id
}

// Strategy returns the delivery strategy the subscription was created with.
func (s *Subscription[S]) Strategy() Strategy {
	return s.strategy
}

// Next returns the oldest pending notification, blocking while none is
// pending.
//
// The context bounds the wait: after the store stops dispatching (or after
// Close), a blocked Next only returns when the context expires, with the
// context's error. Notifications buffered before Close still drain in order.
func (s *Subscription[S]) Next(ctx context.Context) (S, Action, error) {
	n, err := s.ch.Pop(ctx)
	if err != nil {
		var zero S
		return zero, nil, err
	}
	return n.State, n.Action, nil
}

// Pending returns the number of buffered notifications. For a [Latest]
// subscription this is never more than one.
func (s *Subscription[S]) Pending() int {
	return s.ch.Len()
}

// Close detaches the subscription from its store.
//
// Detachment is immediate on the producer side: no dispatch after Close
// delivers to this subscription. Close does not unblock a consumer already
// waiting in [Subscription.Next]; bound that wait with its context.
// Safe to call multiple times.
func (s *Subscription[S]) Close() {
	s.once.Do(func() {
		s.detach()
		s.ch.Close()
	})
}

// subscriberSet is a guarded registry of the live subscriptions on a store.
//
// Fan-out iterates a snapshot taken under the lock, so attaching or
// detaching a subscription during an in-flight dispatch never corrupts the
// iteration.
type subscriberSet[S any] struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*notify.Channel[Notification[S]]
}

func newSubscriberSet[S any]() *subscriberSet[S] {
	return &subscriberSet[S]{
		entries: make(map[uuid.UUID]*notify.Channel[Notification[S]]),
	}
}

// subscribe creates a subscription, attaches it, and returns it.
func (set *subscriberSet[S]) subscribe(logger *slog.Logger, store uuid.UUID, opts ...SubscribeOption) *Subscription[S] {
	cfg := &subscribeConfig{strategy: Latest}
	for _, opt := range opts {
		opt(cfg)
	}

	mode := notify.Latest
	if cfg.strategy == Every {
		mode = notify.Every
	}

	id := uuid.New()
	ch := notify.New[Notification[S]](mode)

	set.mu.Lock()
	set.entries[id] = ch
	set.mu.Unlock()

	logger.Debug("subscription attached",
		"store", store,
		"subscription", id,
		"strategy", cfg.strategy.String(),
	)

	return &Subscription[S]{
		id:       id,
		strategy: cfg.strategy,
		ch:       ch,
		detach: func() {
			set.mu.Lock()
			delete(set.entries, id)
			set.mu.Unlock()

			logger.Debug("subscription detached",
				"store", store,
				"subscription", id,
			)
		},
	}
}

// notify pushes the notification to every attached subscription.
//
// Cross-subscriber order is unspecified; each subscriber individually sees
// notifications in dispatch order.
func (set *subscriberSet[S]) notify(state S, action Action) {
	set.mu.Lock()
	channels := make([]*notify.Channel[Notification[S]], 0, len(set.entries))
	for _, ch := range set.entries {
		channels = append(channels, ch)
	}
	set.mu.Unlock()

	n := Notification[S]{State: state, Action: action}
	for _, ch := range channels {
		ch.Push(n)
	}
}
