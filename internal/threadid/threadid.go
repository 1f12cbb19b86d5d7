// File: internal/threadid/threadid.go
// Package threadid gives the calling goroutine a stable identity tied to
// its underlying OS thread, mirroring the original's use of pthread_t as
// the registry key (spec.md §3, ThreadData.owning thread id).
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package threadid

import "runtime"

// Current locks the calling goroutine to its current OS thread (if not
// already locked) and returns a stable identifier for that thread. The
// goroutine must not be allowed to migrate threads for the lifetime of any
// per-thread state keyed on the returned id, so callers that own a loop
// should call Current once, early, and never again relinquish the OS thread.
func Current() int {
	runtime.LockOSThread()
	return currentPlatform()
}
