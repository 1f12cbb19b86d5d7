// File: reactor/heap_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"testing"
	"time"
)

func TestTimeoutHeapOrdering(t *testing.T) {
	var h timeoutHeap
	base := time.Now()
	offsets := []int{5, 1, 4, 2, 3}
	for _, off := range offsets {
		h.insert(&timeoutState{fireTime: base.Add(time.Duration(off) * time.Second)})
	}

	var prev time.Time
	count := 0
	for h.len() > 0 {
		min := h.popMin()
		if !prev.IsZero() && min.fireTime.Before(prev) {
			t.Fatal("heap did not pop in fire-time order")
		}
		prev = min.fireTime
		count++
	}
	if count != len(offsets) {
		t.Fatalf("popped %d nodes, want %d", count, len(offsets))
	}
}

func TestTimeoutHeapRemoveAt(t *testing.T) {
	var h timeoutHeap
	base := time.Now()
	a := &timeoutState{fireTime: base}
	b := &timeoutState{fireTime: base.Add(time.Second)}
	c := &timeoutState{fireTime: base.Add(2 * time.Second)}
	h.insert(a)
	h.insert(b)
	h.insert(c)

	h.removeAt(b.heapIndex)
	if h.len() != 2 {
		t.Fatalf("len = %d, want 2", h.len())
	}
	if b.heapIndex != -1 {
		t.Fatalf("removed node heapIndex = %d, want -1", b.heapIndex)
	}

	min := h.popMin()
	if min != a {
		t.Fatal("expected a to remain the minimum after removing b")
	}
}

func TestTimeoutHeapClear(t *testing.T) {
	var h timeoutHeap
	h.insert(&timeoutState{fireTime: time.Now()})
	h.insert(&timeoutState{fireTime: time.Now().Add(time.Second)})
	h.clear()
	if h.len() != 0 {
		t.Fatalf("len = %d, want 0 after clear", h.len())
	}
	if h.peekMin() != nil {
		t.Fatal("expected nil peekMin on empty heap")
	}
}
