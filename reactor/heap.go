// File: reactor/heap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Intrusive min-heap of timeouts ordered by fire time, each node storing its
// own index so cancellation is O(log n) rather than O(n) — spec.md §4.3's
// "back-pointer from each node to its index." Grounded on the shape of the
// teacher's lock-free ring/queue structures (core/concurrency/ring.go),
// adapted here from a lock-free ring to a plain (single-thread-owned) binary
// heap, since TimeoutSet is only ever touched by its owning loop thread.

package reactor

type timeoutHeap struct {
	nodes []*timeoutState
}

func (h *timeoutHeap) len() int { return len(h.nodes) }

func (h *timeoutHeap) peekMin() *timeoutState {
	if len(h.nodes) == 0 {
		return nil
	}
	return h.nodes[0]
}

func (h *timeoutHeap) insert(t *timeoutState) {
	t.heapIndex = len(h.nodes)
	h.nodes = append(h.nodes, t)
	h.siftUp(t.heapIndex)
}

func (h *timeoutHeap) popMin() *timeoutState {
	if len(h.nodes) == 0 {
		return nil
	}
	return h.removeAt(0)
}

func (h *timeoutHeap) removeAt(index int) *timeoutState {
	n := len(h.nodes)
	removed := h.nodes[index]
	last := n - 1
	h.swap(index, last)
	h.nodes = h.nodes[:last]
	if index < last {
		h.siftDown(index)
		h.siftUp(index)
	}
	removed.heapIndex = -1
	return removed
}

func (h *timeoutHeap) clear() {
	for _, n := range h.nodes {
		n.heapIndex = -1
	}
	h.nodes = h.nodes[:0]
}

func (h *timeoutHeap) swap(i, j int) {
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
	h.nodes[i].heapIndex = i
	h.nodes[j].heapIndex = j
}

func (h *timeoutHeap) less(i, j int) bool {
	return h.nodes[i].fireTime.Before(h.nodes[j].fireTime)
}

func (h *timeoutHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *timeoutHeap) siftDown(i int) {
	n := len(h.nodes)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}
