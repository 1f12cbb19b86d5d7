// File: reactor/wakepipe.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wake pipe read/write helpers, grounded on the original's wake()/
// handle_signal()/wait_for_events() pipe handling
// (EventLoopImplementationUnix.cpp lines 330-404, 568-585).

package reactor

import (
	"encoding/binary"
	"os"

	"golang.org/x/sys/unix"
)

// writeWakeToken writes a single 32-bit token to td's wake pipe. A write
// failure here is spec.md §7's "fatal programmer/OS error" bucket: the wake
// pipe is sized well under PIPE_BUF, so any error other than a transient
// EINTR means something is fundamentally wrong with the pipe.
func writeWakeToken(td *threadData, token int32) {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], uint32(token))
	for {
		n, err := unix.Write(td.wakeWriteFD, buf[:])
		if err == nil {
			if n != len(buf) {
				fatal(td.cfg.Logger, "writeWakeToken", os.NewSyscallError("write", unix.EIO))
			}
			return
		}
		if err == unix.EINTR {
			continue
		}
		fatal(td.cfg.Logger, "writeWakeToken", err)
	}
}

// wake writes a generic wake token (0) — "I enqueued work for you."
func wake(td *threadData) {
	writeWakeToken(td, 0)
}

// drainWakePipe reads up to len(tokens) int32 tokens from td's wake pipe
// into tokens, returning the number read. Partial reads are tolerated; EINTR
// is retried; any other read error is fatal.
func drainWakePipe(td *threadData, tokens []int32) int {
	buf := make([]byte, 4*len(tokens))
	var n int
	for {
		var err error
		n, err = unix.Read(td.wakeReadFD, buf)
		if err == nil {
			break
		}
		if err == unix.EINTR {
			continue
		}
		fatal(td.cfg.Logger, "drainWakePipe", err)
	}
	if n == 0 {
		return 0
	}
	count := n / 4
	for i := 0; i < count; i++ {
		tokens[i] = int32(binary.NativeEndian.Uint32(buf[i*4 : i*4+4]))
	}
	return count
}
