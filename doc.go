// Package unicycle provides a small, embeddable reactive state container
// implementing unidirectional data flow.
//
// A [Store] owns a single immutable state value that changes only by being
// replaced: callers dispatch tagged [Action] values, the store folds them
// through its registered [Reducer] functions, and interested consumers are
// notified of every transition through asynchronous subscriptions. The store
// is an in-process building block; it defines no wire protocol and persists
// nothing.
//
// # Quick Start
//
// Define actions, register reducers, and dispatch:
//
//	type Increment struct{}
//
//	func (Increment) Tag() string { return "increment" }
//
//	store, err := unicycle.New(
//	    unicycle.WithDefaultState(0),
//	    unicycle.WithReducer(unicycle.Handle(func(state int, _ unicycle.Action) int {
//	        return state + 1
//	    }, "increment")),
//	)
//	if err != nil {
//	    slog.Error("failed to create store", "error", err)
//	    os.Exit(1)
//	}
//
//	store.Dispatch(Increment{}) // returns 1
//
// # Subscriptions
//
// Subscriptions deliver (state, action) pairs to consumers without polling.
// Two delivery strategies are available:
//
//   - [Latest] (the default): the subscription buffers at most one pending
//     notification; a newer one overwrites it. Consumers always see the most
//     recent transition but may miss intermediate ones.
//   - [Every]: the subscription buffers every notification in dispatch order
//     and drops none.
//
// A subscription is a scoped acquisition: close it when done.
//
//	sub := store.Subscribe(unicycle.WithStrategy(unicycle.Every))
//	defer sub.Close()
//
//	state, action, err := sub.Next(ctx)
//
// Next blocks while no notification is pending; the context bounds the wait.
//
// # Combined Stores
//
// Independent stores compose into a single store via [NewCombined]. The
// combined store forwards every dispatched action to each named child in
// declaration order and derives its own state from theirs with a combiner
// function. A combined store satisfies the same dispatch/subscribe contract
// and may itself be a child of another combined store.
//
// # Concurrency
//
// Dispatch is synchronous and assumes a single writer: do not call Dispatch
// concurrently on one store without external serialization. Subscribing,
// closing subscriptions, and consuming notifications are safe from other
// goroutines; consumption is the only blocking point in the system.
package unicycle
