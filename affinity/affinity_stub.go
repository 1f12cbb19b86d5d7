//go:build !linux && !windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for unsupported platforms. Returns an error to
// indicate unavailability rather than silently no-op'ing.

package affinity

import "errors"

// setAffinityPlatform is a stub for platforms where CPU affinity is not
// supported.
func setAffinityPlatform(cpuID int) error {
	return errors.New("affinity: not supported on this platform")
}
