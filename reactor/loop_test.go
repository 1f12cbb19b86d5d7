// File: reactor/loop_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"sync"
	"testing"
	"time"

	"github.com/momentics/hioloop/api"
)

type loopFakeReceiver struct {
	mu      sync.Mutex
	events  int
	visible bool
}

func (r *loopFakeReceiver) IsVisibleForTimerPurposes() bool { return r.visible }
func (r *loopFakeReceiver) HandleEvent(api.Event) {
	r.mu.Lock()
	r.events++
	r.mu.Unlock()
}

func (r *loopFakeReceiver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events
}

func TestLoopRegisterTimerEventuallyFires(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	receiver := &loopFakeReceiver{visible: true}
	if _, err := RegisterTimer[loopFakeReceiver](l, receiver, 1, false, FireOnlyWhenVisible); err != nil {
		t.Fatalf("RegisterTimer: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for receiver.count() == 0 && time.Now().Before(deadline) {
		l.Pump(api.DontWait)
		time.Sleep(time.Millisecond)
	}
	if receiver.count() == 0 {
		t.Fatal("expected the registered timer to fire at least once")
	}
}

func TestLoopPostEventWakesAndDispatches(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	receiver := &loopFakeReceiver{visible: true}
	done := make(chan struct{})
	go func() {
		l.PostEvent(receiver, api.TimerEvent{})
		close(done)
	}()
	<-done

	l.Pump(api.WaitForEvents)
	if receiver.count() != 1 {
		t.Fatalf("receiver.count() = %d, want 1", receiver.count())
	}
}

func TestLoopExecReturnsQuitCode(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	go func() {
		time.Sleep(10 * time.Millisecond)
		l.Quit(7)
		l.Wake()
	}()

	code := l.Exec()
	if code != 7 {
		t.Fatalf("Exec returned %d, want 7", code)
	}
}

func TestUnregisterTimerPreventsFurtherFiring(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	receiver := &loopFakeReceiver{visible: true}
	id, err := RegisterTimer[loopFakeReceiver](l, receiver, 0, true, FireAlways)
	if err != nil {
		t.Fatalf("RegisterTimer: %v", err)
	}

	l.Pump(api.DontWait)
	UnregisterTimer(l, id)

	seenAfterUnregister := receiver.count()
	for i := 0; i < 5; i++ {
		l.Pump(api.DontWait)
	}
	if receiver.count() != seenAfterUnregister {
		t.Fatalf("receiver kept firing after UnregisterTimer: before=%d after=%d", seenAfterUnregister, receiver.count())
	}
}

func TestRegisterTimerRejectsNegativeInterval(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	receiver := &loopFakeReceiver{visible: true}
	if _, err := RegisterTimer[loopFakeReceiver](l, receiver, -1, false, FireAlways); err != ErrInvalidInterval {
		t.Fatalf("err = %v, want ErrInvalidInterval", err)
	}
}
