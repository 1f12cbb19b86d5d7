// File: reactor/notifiers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Notifier registration, grounded on the original's register_notifier /
// unregister_notifier (EventLoopImplementationUnix.cpp lines 649-672).

package reactor

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioloop/api"
)

func notificationToPollEvents(t api.NotificationType) int16 {
	var events int16
	if t&api.NotificationRead != 0 {
		events |= unix.POLLIN
	}
	if t&api.NotificationWrite != 0 {
		events |= unix.POLLOUT
	}
	return events
}

// registerNotifier inserts n into td's fd map and appends a matching
// poll-descriptor, then records td's thread id as n's owner.
func registerNotifier(td *threadData, n api.Notifier) {
	fd := n.FD()
	td.notifiers[fd] = n
	td.pollFDs = append(td.pollFDs, unix.PollFd{
		Fd:     int32(fd),
		Events: notificationToPollEvents(n.Type()),
	})
	n.SetOwnerThread(td.id)
}

// unregisterNotifier removes fd from td's notifier map and every matching
// poll-descriptor. No-op if td is nil (owning thread already detached).
func unregisterNotifier(td *threadData, fd int) {
	if td == nil {
		return
	}
	delete(td.notifiers, fd)
	kept := td.pollFDs[:0]
	for _, pfd := range td.pollFDs {
		if int(pfd.Fd) != fd {
			kept = append(kept, pfd)
		}
	}
	td.pollFDs = kept
}
