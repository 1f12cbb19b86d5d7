// Package reactor implements a per-thread event loop runtime atop a
// readiness-based poll multiplexer (golang.org/x/sys/unix.Poll). Each
// participating thread owns an independent Loop; loops cooperate only
// through PostEvent/Wake and a process-wide signal registry.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package reactor
