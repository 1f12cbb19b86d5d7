// File: reactor/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Loop is the per-thread event loop driver, grounded on the original's
// EventLoopImplementationUnix / EventLoopManagerUnix::wait_for_events
// (EventLoopImplementationUnix.cpp lines 294-437, 619-683).

package reactor

import (
	"runtime"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioloop/affinity"
	"github.com/momentics/hioloop/api"
	"github.com/momentics/hioloop/control"
	"github.com/momentics/hioloop/internal/threadid"
)

// Loop is the per-thread event loop implementation. Exactly one Loop should
// ever run on a given OS thread; NewLoop pins the calling goroutine to its
// current OS thread for the lifetime of the returned Loop.
type Loop struct {
	threadID int
	td       *threadData
	cfg      Config

	exitRequested atomic.Bool
	exitCode      int

	Metrics *control.Metrics
	Probes  *control.DebugProbes
}

// NewLoop constructs a Loop bound to the calling goroutine's OS thread,
// constructing that thread's ThreadData on first use (spec.md §4.1 current()).
func NewLoop(opts ...Option) *Loop {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	cfg.fillDefaults()

	id := threadid.Current()

	if cfg.PinCPU >= 0 {
		if err := affinity.SetAffinity(cfg.PinCPU); err != nil {
			cfg.Logger.Printf("reactor: NewLoop: cpu affinity: %v", err)
		}
	}

	td := globalRegistry.current(id, cfg)

	l := &Loop{
		threadID: id,
		td:       td,
		cfg:      cfg,
		Metrics:  control.NewMetrics(),
		Probes:   control.NewDebugProbes(),
	}
	l.registerProbes()
	return l
}

func (l *Loop) registerProbes() {
	l.Probes.RegisterProbe("timers.pending", func() any { return l.td.timeouts.count() })
	l.Probes.RegisterProbe("notifiers.count", func() any { return len(l.td.notifiers) })
	l.Probes.RegisterProbe("queue.pending", func() any { return queueFor(l.threadID).HasPendingEvents() })
}

// Close detaches this thread's ThreadData and event queue, releasing the
// wake pipe. The loop must not be exec'd or pumped again afterward. Go has
// no portable pthread-key destructor, so callers that stop running a loop
// on a thread must call Close explicitly (spec.md §4.1).
func (l *Loop) Close() {
	globalRegistry.detach(l.threadID)
	detachQueue(l.threadID)
	runtime.UnlockOSThread()
}

// Exec runs pump(WaitForEvents) until Quit has been requested, then returns
// the requested exit code.
func (l *Loop) Exec() int {
	for {
		if l.exitRequested.Load() {
			return l.exitCode
		}
		l.Pump(api.WaitForEvents)
	}
}

// Pump runs one wait_for_events iteration then drains the thread event
// queue, returning the number of events processed.
func (l *Loop) Pump(mode api.PumpMode) int {
	l.waitForEvents(mode)
	n := queueFor(l.threadID).Process()
	if n > 0 {
		l.Metrics.Inc("events_processed", int64(n))
	}
	return n
}

// Quit requests that Exec return code at the next iteration boundary.
func (l *Loop) Quit(code int) {
	l.exitCode = code
	l.exitRequested.Store(true)
}

// PostEvent enqueues event for receiver on this Loop's thread and wakes it.
// Safe to call from any goroutine. Internal posts made from within this
// Loop's own iteration (Timer.fire, notifier activation) go straight to the
// thread's queue without waking, since the same iteration will drain the
// queue regardless; PostEvent always wakes, which is only ever a spurious
// extra iteration — explicitly tolerated by spec.md §8's wake-idempotence
// property — in exchange for never needing to detect "am I already on this
// loop's thread" from arbitrary caller goroutines.
func (l *Loop) PostEvent(receiver api.EventReceiver, event api.Event) {
	queueFor(l.threadID).PostEvent(receiver, event)
	l.didPostEvent()
	wake(l.td)
}

// Wake unblocks a poll this loop is blocked in without posting any event.
func (l *Loop) Wake() {
	wake(l.td)
}

// didPostEvent is a deliberately empty hook, kept for parity with the
// original's EventLoopManager::did_post_event — present for subclasses/
// wrappers that want to observe posts, not because it does anything itself.
func (l *Loop) didPostEvent() {}

// waitForEvents implements spec.md §4.7 step by step.
func (l *Loop) waitForEvents(mode api.PumpMode) {
	q := queueFor(l.threadID)

retry:
	hasPending := q.HasPendingEvents()

	now := time.Now()
	l.td.timeouts.absolutizeRelativeTimeouts(now)

	timeoutMS := 0
	waitForever := false
	if mode == api.WaitForEvents && !hasPending {
		if next, ok := l.td.timeouts.nextTimerExpiration(); ok {
			d := next.Sub(now)
			if d < 0 {
				d = 0
			}
			ms := d.Milliseconds()
			const maxInt32 = int64(1<<31 - 1)
			if ms > maxInt32 {
				ms = maxInt32
			}
			timeoutMS = int(ms)
		} else {
			waitForever = true
		}
	}

	pollTimeout := timeoutMS
	if waitForever {
		pollTimeout = -1
	}

	var n int
	for {
		var err error
		n, err = unix.Poll(l.td.pollFDs, pollTimeout)
		if err == nil {
			break
		}
		if err == unix.EINTR {
			continue
		}
		fatal(l.cfg.Logger, "waitForEvents: poll", err)
	}
	timeAfterPoll := time.Now()
	l.Metrics.Inc("poll_iterations", 1)

	if l.td.pollFDs[0].Revents&unix.POLLIN != 0 {
		tokens := make([]int32, l.cfg.WakeTokenBatch)
		read := drainWakePipe(l.td, tokens)

		wakeRequested := false
		for i := 0; i < read; i++ {
			if tokens[i] != 0 {
				globalSignals.dispatch(int(tokens[i]))
			} else {
				wakeRequested = true
			}
		}

		if !wakeRequested && read == len(tokens) {
			goto retry
		}
	}

	if n != 0 {
		for _, pfd := range l.td.pollFDs[1:] {
			notifier, ok := l.td.notifiers[int(pfd.Fd)]
			if !ok {
				continue
			}

			if l.cfg.AlwaysPostNotifier {
				queueFor(l.threadID).PostEvent(notifier, api.NotifierActivationEvent{
					FD:   notifier.FD(),
					Type: notifier.Type(),
				})
				continue
			}

			var t api.NotificationType
			if pfd.Revents&unix.POLLIN != 0 {
				t |= api.NotificationRead
			}
			if pfd.Revents&unix.POLLOUT != 0 {
				t |= api.NotificationWrite
			}
			if pfd.Revents&unix.POLLHUP != 0 {
				t |= api.NotificationRead | api.NotificationHangUp
			}
			if pfd.Revents&unix.POLLERR != 0 {
				t |= api.NotificationError
			}
			t &= notifier.Type()

			if t != api.NotificationNone {
				queueFor(l.threadID).PostEvent(notifier, api.NotifierActivationEvent{FD: notifier.FD(), Type: t})
			}
		}
	}

	fired := l.td.timeouts.fireExpired(timeAfterPoll)
	if fired > 0 {
		l.Metrics.Inc("timers_fired", int64(fired))
	}
}
