// File: reactor/timeout_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"testing"
	"time"
)

type fakeTimeout struct {
	s          timeoutState
	fired      int
	reschedule time.Duration
}

func (f *fakeTimeout) sched() *timeoutState { return &f.s }

func (f *fakeTimeout) fire(set *TimeoutSet, now time.Time) {
	f.fired++
	if f.reschedule > 0 {
		d := f.reschedule
		f.reschedule = 0
		set.scheduleRelative(f, d)
	}
}

func TestTimeoutSetFireExpiredOnlyFiresDue(t *testing.T) {
	ts := newTimeoutSet()
	now := time.Now()

	due := &fakeTimeout{}
	due.s.fireTime = now.Add(-time.Millisecond)
	ts.scheduleAbsolute(due)

	future := &fakeTimeout{}
	future.s.fireTime = now.Add(time.Hour)
	ts.scheduleAbsolute(future)

	fired := ts.fireExpired(now)
	if fired != 1 {
		t.Fatalf("fireExpired returned %d, want 1", fired)
	}
	if due.fired != 1 {
		t.Fatal("expected due timeout to fire")
	}
	if future.fired != 0 {
		t.Fatal("expected future timeout not to fire")
	}
	if due.s.isScheduled() {
		t.Fatal("expected fired timeout to be unscheduled")
	}
}

func TestTimeoutSetAbsolutizeRelative(t *testing.T) {
	ts := newTimeoutSet()
	a := &fakeTimeout{}
	ts.scheduleRelative(a, 10*time.Millisecond)
	if a.s.state != statePendingRelative {
		t.Fatal("expected pending-relative state after scheduleRelative")
	}

	now := time.Now()
	ts.absolutizeRelativeTimeouts(now)
	if a.s.state != stateScheduledAbsolute {
		t.Fatal("expected scheduled-absolute state after absolutize")
	}

	expires, ok := ts.nextTimerExpiration()
	if !ok {
		t.Fatal("expected a next expiration")
	}
	if expires.Before(now) {
		t.Fatal("expected expiration in the future")
	}
}

func TestTimeoutSetUnschedule(t *testing.T) {
	ts := newTimeoutSet()
	a := &fakeTimeout{}
	a.s.fireTime = time.Now().Add(time.Hour)
	ts.scheduleAbsolute(a)
	if ts.count() != 1 {
		t.Fatalf("count = %d, want 1", ts.count())
	}

	ts.unschedule(a)
	if ts.count() != 0 {
		t.Fatalf("count = %d, want 0 after unschedule", ts.count())
	}
	if a.s.isScheduled() {
		t.Fatal("expected unscheduled after unschedule")
	}

	// unscheduling an already-unscheduled timeout is a no-op.
	ts.unschedule(a)
}

func TestTimeoutSetUnschedulePending(t *testing.T) {
	ts := newTimeoutSet()
	a := &fakeTimeout{}
	b := &fakeTimeout{}
	ts.scheduleRelative(a, time.Second)
	ts.scheduleRelative(b, 2*time.Second)

	ts.unschedule(a)
	if len(ts.pending) != 1 {
		t.Fatalf("pending len = %d, want 1", len(ts.pending))
	}
	if ts.pending[0] != b.sched() {
		t.Fatal("expected b to remain pending after unscheduling a")
	}
	if b.s.pendingIdx != 0 {
		t.Fatalf("b.pendingIdx = %d, want 0 after compaction", b.s.pendingIdx)
	}
}

func TestTimeoutSetFireReschedulesWithoutReentry(t *testing.T) {
	ts := newTimeoutSet()
	a := &fakeTimeout{reschedule: time.Millisecond}
	a.s.fireTime = time.Now().Add(-time.Millisecond)
	ts.scheduleAbsolute(a)

	fired := ts.fireExpired(time.Now())
	if fired != 1 {
		t.Fatalf("fireExpired returned %d, want 1", fired)
	}
	if a.fired != 1 {
		t.Fatal("expected exactly one fire despite the reschedule inside it")
	}
	if a.s.state != statePendingRelative {
		t.Fatal("expected the timeout to be rescheduled as pending-relative")
	}
}

func TestTimeoutSetClear(t *testing.T) {
	ts := newTimeoutSet()
	a := &fakeTimeout{}
	b := &fakeTimeout{}
	a.s.fireTime = time.Now().Add(time.Hour)
	ts.scheduleAbsolute(a)
	ts.scheduleRelative(b, time.Second)

	ts.clear()
	if ts.count() != 0 {
		t.Fatalf("count = %d, want 0 after clear", ts.count())
	}
	if a.s.isScheduled() || b.s.isScheduled() {
		t.Fatal("expected both timeouts unscheduled after clear")
	}
}
