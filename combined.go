package unicycle

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"
)

// States holds child states keyed by child name, as passed to a [Combiner].
type States map[string]any

// StateOf extracts the named child state with its concrete type.
//
// It panics if the named state is not of type T. [NewCombined] invokes the
// combiner once during construction, so a type mismatch surfaces there
// rather than on some later dispatch.
func StateOf[T any](states States, name string) T {
	value, ok := states[name].(T)
	if !ok {
		panic(fmt.Sprintf("unicycle: child state %q is %T, not %T", name, states[name], value))
	}
	return value
}

// Combiner computes a combined store's state from its children's states.
//
// Like a [Reducer], a combiner must be pure. It is invoked once at
// construction and then after every dispatch.
type Combiner[S any] func(states States) S

// childStore is the store surface a combined store drives. *Store and
// *Combined both satisfy it, so combined stores nest.
type childStore interface {
	dispatchAny(action Action) any
	stateAny() any
}

// Child declares a named child store of a combined store.
//
// Children are created with [StoreChild] or [CombinedChild] and passed to
// [NewCombined] as an ordered list; dispatch forwards actions to children in
// that order.
type Child struct {
	name  string
	build func(initial any, seeded bool) (childStore, error)
}

// Name returns the child's name, which keys its state in [States] and names
// the field of the combined initial state it is seeded from.
func (c Child) Name() string {
	return c.name
}

// StoreChild declares a child backed by a [Store] constructor.
//
// The constructor receives the child's seed as a [WithInitialState] option
// when the combined store was given an explicit initial state; otherwise it
// is called with no options and must resolve its own default.
//
// Example:
//
//	unicycle.StoreChild("Counter", NewCounterStore)
func StoreChild[S any](name string, construct func(opts ...Option[S]) (*Store[S], error)) Child {
	return Child{
		name:  name,
		build: buildChild(name, construct),
	}
}

// CombinedChild declares a child backed by a [Combined] constructor,
// allowing combined stores to nest.
func CombinedChild[S any](name string, construct func(opts ...Option[S]) (*Combined[S], error)) Child {
	return Child{
		name:  name,
		build: buildChild(name, construct),
	}
}

// buildChild adapts a typed store constructor to the untyped seeding path.
func buildChild[S any, C childStore](name string, construct func(opts ...Option[S]) (C, error)) func(any, bool) (childStore, error) {
	return func(initial any, seeded bool) (childStore, error) {
		if !seeded {
			sub, err := construct()
			return sub, err
		}
		value, ok := initial.(S)
		if !ok {
			var want S
			return nil, &FieldError{
				Field:  name,
				Detail: fmt.Sprintf("has type %T, want %T", initial, want),
			}
		}
		sub, err := construct(WithInitialState(value))
		return sub, err
	}
}

// Combined is a [Store] specialization whose state is derived from a fixed
// set of named child stores by a [Combiner].
//
// A combined store supports the same dispatch/subscribe contract as a plain
// store and may itself be a child of another combined store. Its children
// are exclusively owned: dispatching directly against a child desynchronizes
// the parent's cached combined state until the parent's own next dispatch,
// so callers needing strict parent-state consistency must dispatch through
// the parent only.
type Combined[S any] struct {
	id       uuid.UUID
	state    S
	names    []string
	children map[string]childStore
	combine  Combiner[S]
	subs     *subscriberSet[S]
	logger   *slog.Logger
}

// NewCombined composes named child stores into a single store whose state is
// the combiner's output.
//
// Children are instantiated in declaration order. When an explicit initial
// state is supplied with [WithInitialState], each child is seeded from the
// equally-named exported struct field (or string map key) of that value;
// a missing or incompatible field is a [*FieldError]. Without an explicit
// initial state each child resolves its own default. The combined store's
// initial state is the combiner applied to the children's resulting states.
//
// Reducer registrations are rejected with [ErrCombinedReducer]; a
// [WithDefaultState] option is ignored, since the children's defaults define
// the combined default.
//
// Example:
//
//	store, err := unicycle.NewCombined(combinePair,
//	    []unicycle.Child{
//	        unicycle.StoreChild("Counter", NewCounterStore),
//	        unicycle.StoreChild("Mirror", NewMirrorStore),
//	    },
//	)
func NewCombined[S any](combine Combiner[S], children []Child, opts ...Option[S]) (*Combined[S], error) {
	if combine == nil {
		return nil, errors.New("combiner cannot be nil")
	}
	if len(children) == 0 {
		return nil, errors.New("at least one child store is required")
	}

	cfg := &storeConfig[S]{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if len(cfg.registry) > 0 {
		return nil, ErrCombinedReducer
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	names := make([]string, 0, len(children))
	built := make(map[string]childStore, len(children))
	states := make(States, len(children))

	for _, child := range children {
		if child.build == nil {
			return nil, fmt.Errorf("child %q was not created with StoreChild or CombinedChild", child.name)
		}
		if _, dup := built[child.name]; dup {
			return nil, fmt.Errorf("duplicate child name: %q", child.name)
		}

		var initial any
		seeded := false
		if cfg.hasInitial {
			value, err := namedField(cfg.initial, child.name)
			if err != nil {
				return nil, err
			}
			initial, seeded = value, true
		}

		sub, err := child.build(initial, seeded)
		if err != nil {
			return nil, fmt.Errorf("child %q: %w", child.name, err)
		}

		names = append(names, child.name)
		built[child.name] = sub
		states[child.name] = sub.stateAny()
	}

	return &Combined[S]{
		id:       uuid.New(),
		state:    combine(states),
		names:    names,
		children: built,
		combine:  combine,
		subs:     newSubscriberSet[S](),
		logger:   logger,
	}, nil
}

// namedField extracts the named field from a struct state, or the named key
// from a string-keyed map state.
func namedField(state any, name string) (any, error) {
	v := reflect.ValueOf(state)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		field := v.FieldByName(name)
		if !field.IsValid() {
			return nil, &FieldError{
				Field:  name,
				Detail: fmt.Sprintf("not found in %T", state),
			}
		}
		if !field.CanInterface() {
			return nil, &FieldError{
				Field:  name,
				Detail: fmt.Sprintf("not exported in %T", state),
			}
		}
		return field.Interface(), nil

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, &FieldError{
				Field:  name,
				Detail: fmt.Sprintf("%T is not keyed by string", state),
			}
		}
		value := v.MapIndex(reflect.ValueOf(name))
		if !value.IsValid() {
			return nil, &FieldError{
				Field:  name,
				Detail: fmt.Sprintf("not found in %T", state),
			}
		}
		return value.Interface(), nil

	default:
		return nil, &FieldError{
			Field:  name,
			Detail: fmt.Sprintf("%T is neither a struct nor a string-keyed map", state),
		}
	}
}

// ID returns the unique identifier of this store, as carried in log output.
func (c *Combined[S]) ID() uuid.UUID {
	return c.id
}

// State returns the current combined state. Immediately after any dispatch
// it equals the combiner applied to the children's current states.
func (c *Combined[S]) State() S {
	return c.state
}

// Dispatch forwards the action to every child in declaration order,
// recombines their states, commits the result, and notifies the combined
// store's own subscribers with the (combinedState, action) pair.
//
// Each child performs its own reducer application and fans out to anyone
// subscribed to it directly before the next child is dispatched. The same
// single-writer assumption as [Store.Dispatch] applies.
func (c *Combined[S]) Dispatch(action Action) S {
	states := make(States, len(c.names))
	for _, name := range c.names {
		states[name] = c.children[name].dispatchAny(action)
	}

	state := c.combine(states)
	c.state = state

	c.logger.Debug("action dispatched",
		"store", c.id,
		"action", action.Tag(),
		"children", len(c.names),
	)

	c.subs.notify(state, action)
	return state
}

// Subscribe attaches a new subscription to the combined store. It behaves
// exactly like [Store.Subscribe]; children's own subscribers are unaffected.
func (c *Combined[S]) Subscribe(opts ...SubscribeOption) *Subscription[S] {
	return c.subs.subscribe(c.logger, c.id, opts...)
}

func (c *Combined[S]) dispatchAny(action Action) any {
	return c.Dispatch(action)
}

func (c *Combined[S]) stateAny() any {
	return c.state
}
