package unicycle

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

// Test action vocabulary, shared across the package's tests.

type Increment struct{}

func (Increment) Tag() string { return "increment" }

type Decrement struct{}

func (Decrement) Tag() string { return "decrement" }

type Add struct {
	Amount int
}

func (Add) Tag() string { return "add" }

func increment(state int, _ Action) int { return state + 1 }
func decrement(state int, _ Action) int { return state - 1 }

// newCounter builds the canonical counter store used throughout the tests.
func newCounter(opts ...Option[int]) (*Store[int], error) {
	base := []Option[int]{
		WithDefaultState(0),
		WithReducer(Handle(increment, "increment")),
		WithReducer(Handle(decrement, "decrement")),
	}
	return New(append(base, opts...)...)
}

// newMirror counts in the opposite direction.
func newMirror(opts ...Option[int]) (*Store[int], error) {
	base := []Option[int]{
		WithDefaultState(0),
		WithReducer(Handle(decrement, "increment")),
		WithReducer(Handle(increment, "decrement")),
	}
	return New(append(base, opts...)...)
}

func mustCounter(t *testing.T, opts ...Option[int]) *Store[int] {
	t.Helper()
	store, err := newCounter(opts...)
	if err != nil {
		t.Fatalf("newCounter() error = %v", err)
	}
	return store
}

func TestNew_DefaultState(t *testing.T) {
	store := mustCounter(t)
	if got := store.State(); got != 0 {
		t.Errorf("State() = %d, want 0", got)
	}
}

func TestNew_InitialState(t *testing.T) {
	store := mustCounter(t, WithInitialState(42))
	if got := store.State(); got != 42 {
		t.Errorf("State() = %d, want 42", got)
	}
}

func TestNew_InitialStateOverridesDefault(t *testing.T) {
	// option order must not matter
	store, err := New(
		WithInitialState(42),
		WithDefaultState[int](7),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := store.State(); got != 42 {
		t.Errorf("State() = %d, want 42", got)
	}
}

func TestNew_MissingInitialState(t *testing.T) {
	_, err := New(
		WithReducer(Handle(increment, "increment")),
	)
	if !errors.Is(err, ErrNoInitialState) {
		t.Fatalf("New() error = %v, want ErrNoInitialState", err)
	}
}

func TestNew_NilLogger(t *testing.T) {
	_, err := New(
		WithDefaultState(0),
		WithLogger[int](nil),
	)
	if err == nil {
		t.Fatal("New() with nil logger should fail")
	}
}

func TestWithReducer_NilHandler(t *testing.T) {
	_, err := New(
		WithDefaultState(0),
		WithReducer(Handle[int](nil, "increment")),
	)
	if err == nil {
		t.Fatal("New() with nil reducer handler should fail")
	}
}

func TestWithReducer_NoTags(t *testing.T) {
	_, err := New(
		WithDefaultState(0),
		WithReducer(Handle(increment)),
	)
	if err == nil {
		t.Fatal("New() with tagless reducer should fail")
	}
}

func TestDispatch(t *testing.T) {
	store := mustCounter(t)

	if got := store.Dispatch(Increment{}); got != 1 {
		t.Errorf("Dispatch(Increment) = %d, want 1", got)
	}
	if got := store.State(); got != 1 {
		t.Errorf("State() = %d, want 1", got)
	}

	if got := store.Dispatch(Decrement{}); got != 0 {
		t.Errorf("Dispatch(Decrement) = %d, want 0", got)
	}
	if got := store.State(); got != 0 {
		t.Errorf("State() = %d, want 0", got)
	}
}

func TestDispatch_ActionPayload(t *testing.T) {
	store, err := New(
		WithDefaultState(0),
		WithReducer(Handle(func(state int, action Action) int {
			return state + action.(Add).Amount
		}, "add")),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := store.Dispatch(Add{Amount: 5}); got != 5 {
		t.Errorf("Dispatch(Add{5}) = %d, want 5", got)
	}
}

func TestDispatch_NoMatchingReducer(t *testing.T) {
	store := mustCounter(t, WithInitialState(3))

	sub := store.Subscribe(WithStrategy(Every))
	defer sub.Close()

	if got := store.Dispatch(Add{Amount: 5}); got != 3 {
		t.Errorf("Dispatch(unmatched) = %d, want 3", got)
	}

	// the notification is still delivered
	if got := sub.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}
}

func TestDispatch_MultipleReducersSameTag(t *testing.T) {
	store, err := New(
		WithDefaultState(0),
		WithReducer(Handle(increment, "increment")),
		WithReducer(Handle(increment, "increment")),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := store.Dispatch(Increment{}); got != 2 {
		t.Errorf("Dispatch(Increment) = %d, want 2", got)
	}
}

func TestDispatch_MultiTagReducer(t *testing.T) {
	store, err := New(
		WithDefaultState(0),
		WithReducer(Handle(increment, "increment", "decrement")),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	store.Dispatch(Increment{})
	if got := store.Dispatch(Decrement{}); got != 2 {
		t.Errorf("state after both actions = %d, want 2", got)
	}
}

func TestDispatch_ReducersRunInRegistrationOrder(t *testing.T) {
	// from 1: double-then-increment is 3, increment-then-double would be 4
	store, err := New(
		WithInitialState(1),
		WithReducer(Handle(func(state int, _ Action) int {
			return state * 2
		}, "increment")),
		WithReducer(Handle(increment, "increment")),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := store.Dispatch(Increment{}); got != 3 {
		t.Errorf("Dispatch(Increment) = %d, want 3", got)
	}
}

func TestDispatch_PanickingReducerKeepsEarlierResults(t *testing.T) {
	store, err := New(
		WithDefaultState(0),
		WithReducer(Handle(increment, "increment")),
		WithReducer(Handle(func(int, Action) int {
			panic("boom")
		}, "increment")),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Dispatch should propagate the reducer panic")
			}
		}()
		store.Dispatch(Increment{})
	}()

	// the first reducer's result stays committed; no rollback
	if got := store.State(); got != 1 {
		t.Errorf("State() after panic = %d, want 1", got)
	}
}

func TestDispatch_LeftFoldOverActionSequence(t *testing.T) {
	store := mustCounter(t)

	actions := []Action{
		Increment{}, Increment{}, Decrement{}, Increment{}, Decrement{}, Decrement{},
	}
	want := 0
	for _, action := range actions {
		switch action.(type) {
		case Increment:
			want++
		case Decrement:
			want--
		}
		if got := store.Dispatch(action); got != want {
			t.Fatalf("Dispatch(%s) = %d, want %d", action.Tag(), got, want)
		}
	}
}

func TestDispatch_LogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	store := mustCounter(t, WithLogger[int](logger))
	store.Dispatch(Increment{})

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("action dispatched")) {
		t.Errorf("log output missing dispatch record, got:\n%s", out)
	}
	if !bytes.Contains([]byte(out), []byte("action=increment")) {
		t.Errorf("log output missing action tag, got:\n%s", out)
	}
}

func TestStoreID_Unique(t *testing.T) {
	a := mustCounter(t)
	b := mustCounter(t)
	if a.ID() == b.ID() {
		t.Error("two stores share an ID")
	}
}
