package unicycle

// Action is an immutable, tagged value describing an event to apply to a
// store's state.
//
// The tag identifies the kind of event and is what reducers are registered
// against; multiple concrete action types may share a tag, and one reducer
// may be registered for several tags. Any payload an action carries is read
// by reducers via a type assertion on the concrete action value:
//
//	type Add struct {
//	    Amount int
//	}
//
//	func (Add) Tag() string { return "add" }
//
//	unicycle.Handle(func(state int, action unicycle.Action) int {
//	    return state + action.(Add).Amount
//	}, "add")
//
// Actions should be value types and must not be mutated after dispatch.
type Action interface {
	// Tag returns the identifier reducers are matched against.
	Tag() string
}
