package notify

import (
	"context"
	"sync"
)

// Mode selects the buffering behaviour of a [Channel].
type Mode int

const (
	// Latest keeps at most one pending item; pushing while one is pending
	// overwrites it. Items are never reordered.
	Latest Mode = iota

	// Every keeps every pushed item in FIFO order, unbounded.
	Every
)

// Channel is a single-producer, single-consumer asynchronous queue.
//
// Push never blocks. Pop blocks while the buffer is empty, until woken by a
// Push or until the caller's context expires. Closing the channel stops
// accepting pushes but does not wake a blocked Pop and does not discard
// items already buffered; a consumer drains them with further Pop calls.
type Channel[T any] struct {
	mode Mode

	mu     sync.Mutex
	items  []T
	closed bool

	wake chan struct{}
}

// New creates a [Channel] with the given buffering mode.
func New[T any](mode Mode) *Channel[T] {
	return &Channel[T]{
		mode: mode,
		wake: make(chan struct{}, 1),
	}
}

// Push buffers an item per the channel's mode and signals the consumer.
// Pushing to a closed channel is a no-op.
func (c *Channel[T]) Push(item T) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.mode == Latest && len(c.items) > 0 {
		c.items[len(c.items)-1] = item
	} else {
		c.items = append(c.items, item)
	}
	c.mu.Unlock()

	// non-blocking: a pending signal already covers this push
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Pop removes and returns the oldest buffered item, blocking while the
// buffer is empty. The context bounds the wait; its error is returned if it
// expires first.
func (c *Channel[T]) Pop(ctx context.Context) (T, error) {
	for {
		if item, ok := c.TryPop(); ok {
			return item, nil
		}

		select {
		case <-c.wake:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// TryPop removes and returns the oldest buffered item without blocking.
func (c *Channel[T]) TryPop() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	item := c.items[0]
	c.items = c.items[1:]
	return item, true
}

// Len returns the number of buffered items.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Close stops the channel from accepting further pushes. Already-buffered
// items remain available to Pop. Safe to call multiple times.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
