// File: reactor/timeout.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Timeout and TimeoutSet, grounded on the original's EventLoopTimeout /
// TimeoutSet (EventLoopImplementationUnix.cpp lines 52-171). Per spec.md
// §9's explicit guidance, scheduling state is a tagged three-way enum
// (unscheduled / pending-relative / scheduled-absolute) instead of an
// overloaded signed index, and the relative-vs-absolute union is a tagged
// struct rather than an untagged C++ union.

package reactor

import "time"

type scheduleState uint8

const (
	stateUnscheduled scheduleState = iota
	statePendingRelative
	stateScheduledAbsolute
)

// Timeout is the abstract scheduled entity a TimeoutSet manages. Timer is
// the only concrete implementation in this package; the interface mirrors
// the original's abstract EventLoopTimeout base.
type Timeout interface {
	// fire is invoked by TimeoutSet.fireExpired once this timeout's fire
	// time has passed. Implementations may reschedule themselves into set.
	fire(set *TimeoutSet, now time.Time)
	// sched returns the scheduling bookkeeping TimeoutSet mutates.
	sched() *timeoutState
}

// timeoutState holds exactly the bookkeeping TimeoutSet needs: which of the
// three scheduling states a Timeout is in, its absolute fire time (when
// scheduled) or pending duration (when pending-relative), and its current
// position in whichever structure holds it.
type timeoutState struct {
	owner Timeout

	state    scheduleState
	fireTime time.Time     // meaningful iff state == stateScheduledAbsolute
	duration time.Duration // meaningful iff state == statePendingRelative

	heapIndex  int // meaningful iff state == stateScheduledAbsolute
	pendingIdx int // meaningful iff state == statePendingRelative
}

func (s *timeoutState) isScheduled() bool {
	return s.state != stateUnscheduled
}

// TimeoutSet is a min-heap of absolute-time timeouts plus a side list of
// relative timeouts awaiting absolutization, owned exclusively by one
// thread's ThreadData.
type TimeoutSet struct {
	heap    timeoutHeap
	pending []*timeoutState
}

func newTimeoutSet() TimeoutSet {
	return TimeoutSet{}
}

// scheduleAbsolute inserts t into the min-heap keyed by its already-set
// fireTime. t must not already be scheduled.
func (ts *TimeoutSet) scheduleAbsolute(t Timeout) {
	s := t.sched()
	s.owner = t
	s.state = stateScheduledAbsolute
	ts.heap.insert(s)
}

// scheduleRelative appends t to the pending-relative list with the given
// duration; its fire time is fixed up on the next absolutizeRelativeTimeouts.
func (ts *TimeoutSet) scheduleRelative(t Timeout, duration time.Duration) {
	s := t.sched()
	s.owner = t
	s.state = statePendingRelative
	s.duration = duration
	s.pendingIdx = len(ts.pending)
	ts.pending = append(ts.pending, s)
}

// absolutizeRelativeTimeouts must be called exactly once at the start of
// each loop iteration, before computing the next expiration. For every
// pending-relative timeout it fixes fireTime = now + duration and moves it
// into the heap.
func (ts *TimeoutSet) absolutizeRelativeTimeouts(now time.Time) {
	for _, s := range ts.pending {
		s.fireTime = now.Add(s.duration)
		s.state = stateScheduledAbsolute
		ts.heap.insert(s)
	}
	ts.pending = ts.pending[:0]
}

// nextTimerExpiration returns the earliest fire time in the heap, if any.
func (ts *TimeoutSet) nextTimerExpiration() (time.Time, bool) {
	min := ts.heap.peekMin()
	if min == nil {
		return time.Time{}, false
	}
	return min.fireTime, true
}

// fireExpired pops and fires every timeout whose fireTime has passed,
// returning the count fired. A timeout's fire may reschedule itself; the
// timeout is popped (marked unscheduled) before fire is invoked, so a
// reschedule via scheduleRelative, or via scheduleAbsolute at a time after
// now (both of which timer.fire guarantees), is not fired again by this call.
// A scheduleAbsolute at or before now is fired again by this same call.
func (ts *TimeoutSet) fireExpired(now time.Time) int {
	fired := 0
	for {
		min := ts.heap.peekMin()
		if min == nil || min.fireTime.After(now) {
			break
		}
		s := ts.heap.popMin()
		s.state = stateUnscheduled
		fired++
		s.owner.fire(ts, now)
	}
	return fired
}

// unschedule removes t from whichever structure currently holds it. O(log n).
func (ts *TimeoutSet) unschedule(t Timeout) {
	s := t.sched()
	switch s.state {
	case statePendingRelative:
		last := len(ts.pending) - 1
		i := s.pendingIdx
		ts.pending[i], ts.pending[last] = ts.pending[last], ts.pending[i]
		ts.pending[i].pendingIdx = i
		ts.pending = ts.pending[:last]
	case stateScheduledAbsolute:
		ts.heap.removeAt(s.heapIndex)
	default:
		return
	}
	s.state = stateUnscheduled
}

// count returns the total number of timeouts currently tracked, scheduled
// or pending, for debug/metrics probes.
func (ts *TimeoutSet) count() int {
	return ts.heap.len() + len(ts.pending)
}

// clear marks every scheduled/pending timeout unscheduled and empties both
// structures.
func (ts *TimeoutSet) clear() {
	for _, s := range ts.heap.nodes {
		s.state = stateUnscheduled
	}
	ts.heap.clear()
	for _, s := range ts.pending {
		s.state = stateUnscheduled
	}
	ts.pending = ts.pending[:0]
}
