// File: api/receiver.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// EventReceiver is anything a Timer or Notifier can deliver events to. The
// event loop never owns a receiver outright: Timer holds only a weak
// reference, matching spec.md's "relation + lookup, never ownership" rule.
type EventReceiver interface {
	// IsVisibleForTimerPurposes gates whether a reloading or one-shot timer
	// actually posts its TimerEvent (see reactor's timer.fire / FireWhenNotVisible).
	IsVisibleForTimerPurposes() bool

	// HandleEvent is invoked by ThreadEventQueue.Process for every event
	// previously posted to this receiver, on the receiver's owning thread.
	HandleEvent(event Event)
}
