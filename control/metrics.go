// File: control/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime metrics collector for the reactor's hot path. Narrowed from the
// teacher's map[string]any MetricsRegistry to map[string]*atomic.Int64: every
// counter the reactor reports is a monotonically increasing count, so the
// generic any-typed snapshot the teacher uses would only add an unnecessary
// type assertion on every read.

package control

import (
	"sync"

	"go.uber.org/atomic"
)

// Metrics holds named, concurrently-incrementable counters.
type Metrics struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
}

// NewMetrics creates an empty registry.
func NewMetrics() *Metrics {
	return &Metrics{counters: make(map[string]*atomic.Int64)}
}

// Inc increments the named counter by delta, creating it on first use.
func (m *Metrics) Inc(name string, delta int64) {
	m.mu.RLock()
	c, ok := m.counters[name]
	m.mu.RUnlock()
	if !ok {
		m.mu.Lock()
		c, ok = m.counters[name]
		if !ok {
			c = atomic.NewInt64(0)
			m.counters[name] = c
		}
		m.mu.Unlock()
	}
	c.Add(delta)
}

// Snapshot returns the current value of every counter.
func (m *Metrics) Snapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		out[k] = v.Load()
	}
	return out
}
