// File: api/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// NotificationType is a bitmask describing why a Notifier became ready.
type NotificationType int

const (
	NotificationNone NotificationType = 0
	NotificationRead NotificationType = 1 << (iota - 1)
	NotificationWrite
	NotificationHangUp
	NotificationError
)

// PumpMode controls how long Loop.Pump is allowed to block waiting for
// events during a single iteration.
type PumpMode int

const (
	// WaitForEvents blocks until at least one event source is ready.
	WaitForEvents PumpMode = iota
	// DontWait polls once and returns immediately regardless of readiness.
	DontWait
)
