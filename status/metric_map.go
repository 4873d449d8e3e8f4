// Package status is the counter registry. Components resolve a pointer
// once at init and write atomics directly on hot paths; no lock is taken
// after registration.
package status

import (
	"sort"
	"sync"
)

// MetricMap maps names to lazily created metrics of type T
type MetricMap[T any] struct {
	mu      sync.RWMutex
	metrics map[string]*T
}

// NewMetricMap creates an empty metric map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{metrics: make(map[string]*T)}
}

// Get returns the metric for key, creating it on first use. The returned
// pointer is stable for the lifetime of the map, so callers cache it.
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.metrics[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.metrics[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.metrics[key] = ptr
	return ptr
}

// Range visits every metric in sorted key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.metrics))
	for k := range m.metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.metrics[k])
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.metrics)
}
