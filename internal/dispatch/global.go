package dispatch

import (
	"sync/atomic"

	"github.com/soraterm/soraterm/schema"
)

// The process-wide queue. Set at most once, either explicitly by the
// application entry point or lazily by the first caller of Default.
var defaultQueue atomic.Pointer[Queue]

// Default returns the process-wide queue, creating one with default
// depth on first use. Concurrent first callers observe the same queue;
// events sent before a consumer starts are buffered, not lost.
func Default() *Queue {
	if q := defaultQueue.Load(); q != nil {
		return q
	}
	q := New(0, nil)
	if defaultQueue.CompareAndSwap(nil, q) {
		return q
	}
	return defaultQueue.Load()
}

// SetDefault installs an explicitly constructed queue as the
// process-wide one. It reports false when a queue is already installed,
// in which case callers must adopt Default() instead of replacing it.
func SetDefault(q *Queue) bool {
	if q == nil {
		return false
	}
	return defaultQueue.CompareAndSwap(nil, q)
}

// Send enqueues the event on the process-wide queue, blocking while the
// queue is full. Safe to call from any goroutine at any point in the
// process lifetime.
func Send(ev schema.Event) {
	Default().Send(ev)
}

// TrySend enqueues the event on the process-wide queue without
// blocking. It returns false when the queue is full or no consumer is
// running.
func TrySend(ev schema.Event) bool {
	return Default().TrySend(ev)
}
