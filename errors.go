package unicycle

import (
	"errors"
	"fmt"
)

// ErrNoInitialState is returned by [New] when a store has neither an explicit
// initial state nor a default. Supply one with [WithInitialState] or
// [WithDefaultState].
var ErrNoInitialState = errors.New("initial state must be provided")

// ErrCombinedReducer is returned by [NewCombined] when a reducer registration
// is supplied. A combined store derives its state entirely from its children;
// it has no reducers of its own.
var ErrCombinedReducer = errors.New("combined stores cannot register reducers")

// FieldError reports a failure to seed a combined store's child from the
// combined initial state: the named field is missing from the state value,
// or its value has the wrong type for the child.
type FieldError struct {
	// Field is the child name that could not be extracted.
	Field string

	// Detail describes what went wrong.
	Detail string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("initial state field %q: %s", e.Field, e.Detail)
}
