// File: reactor/timer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Timer, grounded on the original's EventLoopTimer (fire/reload logic,
// EventLoopImplementationUnix.cpp lines 173-219) and TimerShouldFireWhenNotVisible.
// The atomic "is being deleted" CAS follows JemmyH/gogoredis's poller/event
// loop style of wrapping go.uber.org/atomic rather than bare sync/atomic.

package reactor

import (
	"time"

	"go.uber.org/atomic"

	"github.com/momentics/hioloop/api"
	"github.com/momentics/hioloop/internal/weakref"
)

// FireWhenNotVisible controls whether a Timer posts its TimerEvent even when
// its owning receiver reports IsVisibleForTimerPurposes() == false.
type FireWhenNotVisible bool

const (
	FireOnlyWhenVisible FireWhenNotVisible = false
	FireAlways          FireWhenNotVisible = true
)

// TimerID identifies a registered timer for UnregisterTimer. It is an
// opaque pointer-sized token (spec.md §6), never dereferenced by callers.
type TimerID uintptr

// weakReceiver erases the concrete receiver type so *timer does not itself
// need to be generic; RegisterTimer's generic type parameters are resolved
// down to this single interface at registration time.
type weakReceiver interface {
	upgrade() (api.EventReceiver, bool)
}

// receiverPtr constrains a type parameter pair (T, PT) such that PT is *T
// and *T implements api.EventReceiver — the standard pattern for a generic
// function operating on pointer-receiver methods.
type receiverPtr[T any] interface {
	*T
	api.EventReceiver
}

type typedWeakReceiver[T any, PT receiverPtr[T]] struct {
	ref weakref.Ref[T]
}

func (w typedWeakReceiver[T, PT]) upgrade() (api.EventReceiver, bool) {
	p, ok := w.ref.Upgrade()
	if !ok {
		return nil, false
	}
	return PT(p), true
}

func newWeakReceiver[T any, PT receiverPtr[T]](receiver PT) weakReceiver {
	return typedWeakReceiver[T, PT]{ref: weakref.New[T](receiver)}
}

// timer is a Timeout specialization carrying an interval, a reload flag, a
// weak reference to its owning receiver, and a visibility hint.
type timer struct {
	state timeoutState

	interval           time.Duration
	shouldReload       bool
	fireWhenNotVisible FireWhenNotVisible

	owner       weakReceiver
	ownerThread int

	isBeingDeleted atomic.Bool
}

func (t *timer) sched() *timeoutState { return &t.state }

// fire implements Timeout.fire: upgrade the weak owner, reload if needed,
// and post a TimerEvent unless the receiver is invisible and the timer
// isn't flagged to fire regardless.
func (t *timer) fire(set *TimeoutSet, now time.Time) {
	receiver, ok := t.owner.upgrade()
	if !ok {
		return
	}

	if t.shouldReload {
		next := t.state.fireTime.Add(t.interval)
		if !next.After(now) {
			// We fell behind; resync instead of letting catch-up run away.
			next = now.Add(t.interval)
		}
		t.state.fireTime = next
		if !next.Equal(now) {
			set.scheduleAbsolute(t)
		} else {
			// Zero-interval reload: scheduling absolute at "now" would spin
			// this loop iteration forever. Schedule relative with a zero
			// duration instead so it reappears on the next iteration.
			set.scheduleRelative(t, 0)
		}
	}

	if t.fireWhenNotVisible == FireAlways || receiver.IsVisibleForTimerPurposes() {
		queueFor(t.ownerThread).PostEvent(receiver, api.TimerEvent{})
	}
}

// reload sets the timer's next fire time to now + interval, used at
// registration time.
func (t *timer) reload(now time.Time) {
	t.state.fireTime = now.Add(t.interval)
}
