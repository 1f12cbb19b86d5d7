// File: reactor/threaddata.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-thread state: timeouts, notifiers, poll set, and wake pipe. Grounded
// on the original's `struct ThreadData` (EventLoopImplementationUnix.cpp)
// and on the teacher's per-thread epoll bookkeeping in
// reactor/epoll_reactor.go, generalized from epoll to a portable pollfd set.

package reactor

import (
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioloop/api"
)

// threadData is exclusively owned by the thread that created it, except for
// the wake-pipe write end (atomic up to PIPE_BUF) and lookups via
// registry.forThread under the registry's read lock.
type threadData struct {
	id int

	timeouts  TimeoutSet
	notifiers map[int]api.Notifier
	pollFDs   []unix.PollFd // slot 0 is always the wake-pipe read end

	wakeReadFD  int
	wakeWriteFD int

	pid int

	cfg Config
}

func newThreadData(id int, cfg Config) *threadData {
	cfg.fillDefaults()
	td := &threadData{
		id:        id,
		notifiers: make(map[int]api.Notifier),
		pollFDs:   make([]unix.PollFd, 0, cfg.InitialPollFDCapacity),
		pid:       os.Getpid(),
		cfg:       cfg,
	}
	td.timeouts = newTimeoutSet()

	fds, err := unixPipe2CloExec()
	if err != nil {
		fatal(cfg.Logger, "newThreadData: pipe2", err)
	}
	td.wakeReadFD, td.wakeWriteFD = fds[0], fds[1]
	td.pollFDs = append(td.pollFDs, unix.PollFd{Fd: int32(td.wakeReadFD), Events: unix.POLLIN})
	return td
}

func unixPipe2CloExec() ([2]int, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		return fds, err
	}
	return fds, nil
}

// close releases the wake pipe's fds. Notifier fds are never owned by the
// loop (spec.md §5 Resource policy) and so are never closed here.
func (td *threadData) close() {
	_ = unix.Close(td.wakeReadFD)
	_ = unix.Close(td.wakeWriteFD)
}

// ---- Registry -------------------------------------------------------

// registry is the process-wide mapping from thread identity to per-thread
// loop state, protected by a readers-writer lock (spec.md §4.1).
type registry struct {
	mu   sync.RWMutex
	data map[int]*threadData
}

var globalRegistry = &registry{data: make(map[int]*threadData)}

// current returns the ThreadData for id, constructing and registering it on
// first call under a write lock. Subsequent calls with the same id from the
// same (OS-thread-locked) caller return the same instance.
func (r *registry) current(id int, cfg Config) *threadData {
	r.mu.RLock()
	td, ok := r.data[id]
	r.mu.RUnlock()
	if ok {
		return td
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if td, ok = r.data[id]; ok {
		return td
	}
	td = newThreadData(id, cfg)
	r.data[id] = td
	return td
}

// forThread looks up thread state under a read lock; returns nil if the
// thread never created a loop or has since detached.
func (r *registry) forThread(id int) *threadData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data[id]
}

// detach removes id's ThreadData and releases its wake pipe. Go has no
// portable pthread-key destructor to call this automatically, so the owner
// of a Loop must call Loop.Close (which calls this) when it stops exec'ing
// on that thread.
func (r *registry) detach(id int) {
	r.mu.Lock()
	td, ok := r.data[id]
	if ok {
		delete(r.data, id)
	}
	r.mu.Unlock()
	if ok {
		td.close()
	}
}
