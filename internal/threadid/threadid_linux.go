//go:build linux

// File: internal/threadid/threadid_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package threadid

import "golang.org/x/sys/unix"

// currentPlatform returns the real kernel thread id (gettid), the closest
// Linux analogue of pthread_t for registry-keying purposes.
func currentPlatform() int {
	return unix.Gettid()
}
