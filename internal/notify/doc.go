// Package notify implements the single-producer, single-consumer queue
// backing a subscription.
//
// A [Channel] buffers notifications according to its [Mode]: Latest keeps at
// most one pending item with most-recent-wins overwrite, Every keeps an
// unbounded FIFO. The producer side never blocks; the consumer side blocks
// while the buffer is empty and is woken by a signal channel.
//
// This package is internal to unicycle and not part of the public API.
package notify
