// File: api/notifier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Notifier binds a file descriptor to a notification-type mask. It is an
// external collaborator: the loop treats it as an opaque fd holder and never
// constructs one itself (sockets, pipes, eventfds are all out of scope here).
type Notifier interface {
	EventReceiver

	// FD returns the underlying file descriptor.
	FD() int
	// Type returns the subset of {Read, Write, HangUp, Error} this notifier
	// is interested in.
	Type() NotificationType
	// SetOwnerThread records which thread's loop owns this registration.
	SetOwnerThread(id int)
	// OwnerThread returns the thread id set by SetOwnerThread, or 0 if unset.
	OwnerThread() int
}
