// File: reactor/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// threadEventQueue implements the api.ThreadEventQueue collaborator spec.md
// §2.8 leaves external: a FIFO of (receiver, event) per thread that the loop
// posts to and drains from. Backed by github.com/eapache/queue, which the
// teacher's go.mod declares but never actually imports anywhere in its own
// tree — wired here instead of dropped, per SPEC_FULL.md's domain-stack
// policy.

package reactor

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioloop/api"
)

type postedEvent struct {
	receiver api.EventReceiver
	event    api.Event
}

// threadEventQueue is safe to PostEvent to from any goroutine; Process must
// only ever be called by the owning thread.
type threadEventQueue struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newThreadEventQueue() *threadEventQueue {
	return &threadEventQueue{q: queue.New()}
}

func (q *threadEventQueue) PostEvent(receiver api.EventReceiver, event api.Event) {
	q.mu.Lock()
	q.q.Add(postedEvent{receiver: receiver, event: event})
	q.mu.Unlock()
}

func (q *threadEventQueue) HasPendingEvents() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.q.Length() > 0
}

// Process drains and dispatches every event queued as of the moment it is
// called, returning the count processed. Events posted by a receiver's own
// HandleEvent during Process are processed on the next Process call, not
// this one, matching the original's "process what was pending" semantics.
func (q *threadEventQueue) Process() int {
	q.mu.Lock()
	n := q.q.Length()
	batch := make([]postedEvent, 0, n)
	for i := 0; i < n; i++ {
		batch = append(batch, q.q.Remove().(postedEvent))
	}
	q.mu.Unlock()

	for _, pe := range batch {
		pe.receiver.HandleEvent(pe.event)
	}
	return len(batch)
}

// ---- per-thread queue registry ---------------------------------------

var (
	queueRegistryMu sync.RWMutex
	queueRegistry   = make(map[int]*threadEventQueue)
)

// queueFor returns the ThreadEventQueue for the given thread id, creating it
// on first use. This mirrors ThreadData's registry but is kept separate
// since spec.md models ThreadEventQueue as an independent collaborator
// (api.ThreadEventQueue), not a field of ThreadData.
func queueFor(threadID int) *threadEventQueue {
	queueRegistryMu.RLock()
	q, ok := queueRegistry[threadID]
	queueRegistryMu.RUnlock()
	if ok {
		return q
	}

	queueRegistryMu.Lock()
	defer queueRegistryMu.Unlock()
	if q, ok = queueRegistry[threadID]; ok {
		return q
	}
	q = newThreadEventQueue()
	queueRegistry[threadID] = q
	return q
}

func detachQueue(threadID int) {
	queueRegistryMu.Lock()
	delete(queueRegistry, threadID)
	queueRegistryMu.Unlock()
}
