// File: reactor/queue_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"testing"

	"github.com/momentics/hioloop/api"
)

type queueFakeReceiver struct {
	events int
}

func (r *queueFakeReceiver) IsVisibleForTimerPurposes() bool { return true }
func (r *queueFakeReceiver) HandleEvent(api.Event)           { r.events++ }

func TestThreadEventQueuePostAndProcess(t *testing.T) {
	q := newThreadEventQueue()
	r := &queueFakeReceiver{}

	if q.HasPendingEvents() {
		t.Fatal("expected new queue to have no pending events")
	}

	q.PostEvent(r, api.TimerEvent{})
	q.PostEvent(r, api.TimerEvent{})
	if !q.HasPendingEvents() {
		t.Fatal("expected pending events after PostEvent")
	}

	n := q.Process()
	if n != 2 {
		t.Fatalf("Process returned %d, want 2", n)
	}
	if r.events != 2 {
		t.Fatalf("receiver saw %d events, want 2", r.events)
	}
	if q.HasPendingEvents() {
		t.Fatal("expected queue drained after Process")
	}
}

func TestThreadEventQueueProcessDoesNotReplayEventsPostedDuringIt(t *testing.T) {
	q := newThreadEventQueue()
	var reentrant *selfPostingReceiver
	reentrant = &selfPostingReceiver{queue: q}
	q.PostEvent(reentrant, api.TimerEvent{})

	n := q.Process()
	if n != 1 {
		t.Fatalf("Process returned %d, want 1", n)
	}
	if !q.HasPendingEvents() {
		t.Fatal("expected the event posted during Process to survive for the next Process call")
	}
}

type selfPostingReceiver struct {
	queue *threadEventQueue
}

func (r *selfPostingReceiver) IsVisibleForTimerPurposes() bool { return true }
func (r *selfPostingReceiver) HandleEvent(api.Event) {
	r.queue.PostEvent(r, api.TimerEvent{})
}

func TestQueueForRegistryReusesAndDetaches(t *testing.T) {
	const id = 987001
	defer detachQueue(id)

	q1 := queueFor(id)
	q2 := queueFor(id)
	if q1 != q2 {
		t.Fatal("expected queueFor to return the same instance for the same thread id")
	}

	detachQueue(id)
	q3 := queueFor(id)
	if q3 == q1 {
		t.Fatal("expected a fresh queue after detachQueue")
	}
}
