// File: affinity/affinity.go
// Package affinity provides a platform-neutral API for pinning the calling
// OS thread to a logical CPU. Platform-specific implementations live in
// affinity_linux.go / affinity_windows.go / affinity_stub.go behind build
// tags, following the teacher's affinity package layout.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Adapted for the reactor: the teacher pins worker-pool goroutines for NUMA
// locality; here it pins a Loop's single OS thread so poll(2) always runs on
// the CPU the application requested, which matters once ThreadData identity
// is load-bearing rather than just an optimization hint.
package affinity

// SetAffinity pins the calling OS thread to the given logical CPU core. The
// caller must already hold that thread (e.g. via runtime.LockOSThread).
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}
