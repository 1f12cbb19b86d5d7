//go:build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows-specific implementation for setting thread CPU affinity.

package affinity

import (
	"fmt"
	"syscall"
)

var (
	modkernel32                = syscall.NewLazyDLL("kernel32.dll")
	procSetThreadAffinityMask  = modkernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread       = modkernel32.NewProc("GetCurrentThread")
)

// setAffinityPlatform sets thread affinity to a given CPU for Windows.
func setAffinityPlatform(cpuID int) error {
	thread, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << uintptr(cpuID)
	ret, _, err := procSetThreadAffinityMask.Call(thread, mask)
	if ret == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask failed: %w", err)
	}
	return nil
}
