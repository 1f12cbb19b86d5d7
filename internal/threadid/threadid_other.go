//go:build !linux

// File: internal/threadid/threadid_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-Linux platforms have no portable equivalent of gettid reachable
// without cgo, so each OS-thread-locked goroutine is assigned a fresh id
// from a process-wide counter the first time it calls Current.

package threadid

import "sync/atomic"

var counter int64

// currentPlatform hands out a fresh id per call. This is only safe because
// Current's contract requires callers to invoke it exactly once per
// OS-thread-locked goroutine and cache the result themselves.
func currentPlatform() int {
	return int(atomic.AddInt64(&counter, 1))
}
