// File: api/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// ThreadEventQueue is the FIFO of (receiver, event) pairs a loop drains on
// every pump. Implementations must be safe to post to from any thread, but
// Process is only ever called by the owning thread.
type ThreadEventQueue interface {
	// PostEvent enqueues event for receiver. Safe from any goroutine.
	PostEvent(receiver EventReceiver, event Event)
	// HasPendingEvents reports whether Process has work to do.
	HasPendingEvents() bool
	// Process drains and dispatches all currently queued events, returning
	// the count processed.
	Process() int
}
