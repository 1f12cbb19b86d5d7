//go:build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux-specific thread affinity via golang.org/x/sys/unix's
// SchedSetaffinity, avoiding the teacher's cgo pthread_setaffinity_np call:
// the reactor already depends on golang.org/x/sys for polling and the wake
// pipe, and SchedSetaffinity(tid, ...) reaches the same syscall without
// requiring cgo to be enabled for this module to build.

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioloop/internal/threadid"
)

// setAffinityPlatform pins the calling thread to cpuID via sched_setaffinity.
func setAffinityPlatform(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	tid := threadid.Current()
	if err := unix.SchedSetaffinity(tid, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity: %w", err)
	}
	return nil
}
