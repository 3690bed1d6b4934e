package unicycle

// Reducer computes a new state from the current state and a matching action.
//
// Reducer follows functional programming principles: it must be a pure
// function where the same inputs always produce the same output, with no
// side effects. Reducers never run outside the store's dispatch path; the
// store keeps its registry private, so application code has no handle to
// call one directly.
//
// A reducer that panics propagates the panic out of [Store.Dispatch]. Results
// of earlier reducers in the same dispatch remain committed; there is no
// rollback.
type Reducer[S any] func(state S, action Action) S

// Registration associates a [Reducer] with the action tags it handles.
//
// Registrations are created with [Handle] and supplied to [New] via
// [WithReducer]. They are consumed at construction time only; a store's
// registry never changes after New returns.
type Registration[S any] struct {
	tags    []string
	handler Reducer[S]
}

// Handle creates a [Registration] binding a reducer to one or more action
// tags.
//
// At least one tag is required. During dispatch the reducer runs once for an
// action whose tag is in the set, regardless of how many tags it was
// registered for.
//
// Example:
//
//	unicycle.Handle(touch, "increment", "decrement")
func Handle[S any](handler Reducer[S], tags ...string) Registration[S] {
	return Registration[S]{
		tags:    tags,
		handler: handler,
	}
}

// matches reports whether the registration handles the given action tag.
func (r Registration[S]) matches(tag string) bool {
	for _, t := range r.tags {
		if t == tag {
			return true
		}
	}
	return false
}
