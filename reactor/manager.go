// File: reactor/manager.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Registration surface for timers, notifiers, and signals, grounded on the
// original's EventLoopManagerUnix::register_timer / unregister_timer /
// register_notifier / unregister_notifier / register_signal /
// unregister_signal (EventLoopImplementationUnix.cpp lines 221-293, 649-683).
// Unlike the original, where these are process-wide statics that resolve
// "the calling thread" implicitly via ThreadData::the(), each is bound to a
// *Loop here (a method, or for RegisterTimer/UnregisterTimer a function
// taking the *Loop): a Loop already is the one object that knows which thread's
// ThreadData it owns, so there is no need for an implicit current-thread
// lookup distinct from the Loop the caller is holding.

package reactor

import (
	"time"
	"unsafe"

	"github.com/momentics/hioloop/api"
)

// RegisterTimer registers a periodic or one-shot timer owned by receiver on
// l's thread. intervalMS must be non-negative. The timer holds only a weak
// reference to receiver (via the go1.24 weak package): if receiver is
// garbage collected before the timer fires, the timer silently becomes a
// no-op and is not re-armed, exactly as the original's WeakPtr<EventReceiver>
// guard does.
//
// RegisterTimer cannot be a method because Go forbids type parameters on
// methods; it takes the owning *Loop explicitly instead.
func RegisterTimer[T any, PT receiverPtr[T]](
	l *Loop,
	receiver PT,
	intervalMS int,
	shouldReload bool,
	fireWhenNotVisible FireWhenNotVisible,
) (TimerID, error) {
	if intervalMS < 0 {
		return 0, ErrInvalidInterval
	}

	t := &timer{
		interval:           time.Duration(intervalMS) * time.Millisecond,
		shouldReload:       shouldReload,
		fireWhenNotVisible: fireWhenNotVisible,
		owner:              newWeakReceiver[T, PT](receiver),
		ownerThread:        l.threadID,
	}
	t.reload(time.Now())
	l.td.timeouts.scheduleAbsolute(t)

	l.Metrics.Inc("timers_registered", 1)
	return TimerID(uintptr(unsafe.Pointer(t))), nil
}

// UnregisterTimer cancels a timer previously returned by RegisterTimer. It is
// safe to call more than once for the same id; the second call is a no-op.
// id must have been returned for a timer owned by l's thread.
func UnregisterTimer(l *Loop, id TimerID) {
	t := (*timer)(unsafe.Pointer(uintptr(id)))
	if !t.isBeingDeleted.CompareAndSwap(false, true) {
		return
	}
	if t.state.isScheduled() {
		l.td.timeouts.unschedule(t)
	}
}

// RegisterNotifier arms n for readiness notification on l's thread, adding
// its fd to l's poll set.
func (l *Loop) RegisterNotifier(n api.Notifier) {
	registerNotifier(l.td, n)
	l.Metrics.Inc("notifiers_registered", 1)
}

// UnregisterNotifier removes n's fd from whichever thread it was registered
// on — not necessarily l's own thread, since a notifier's owner thread is
// recorded on the notifier itself (spec.md §3 Notifier.owner_thread).
func (l *Loop) UnregisterNotifier(n api.Notifier) {
	td := globalRegistry.forThread(n.OwnerThread())
	unregisterNotifier(td, n.FD())
}

// RegisterSignal installs cb for OS signal sig. Deliveries of sig go through
// the wake pipe of the thread whose loop registered the first handler for sig
// (l's thread if no handler for sig exists yet). Returns a handler id for
// UnregisterSignal. sig must be non-zero.
func (l *Loop) RegisterSignal(sig int, cb func(int)) (int, error) {
	id, err := globalSignals.register(sig, l.threadID, cb)
	if err != nil {
		return 0, err
	}
	l.Metrics.Inc("signals_registered", 1)
	return id, nil
}

// UnregisterSignal removes a handler previously installed by RegisterSignal.
// Reports whether id was found.
func (l *Loop) UnregisterSignal(id int) bool {
	return globalSignals.unregister(id)
}
