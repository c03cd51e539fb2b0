package status

import (
	"slices"
	"strings"
	"sync"
)

// Key names one metric as "group.name"
type Key string

// Group returns the part before the first dot, or the whole key when it has none
func (k Key) Group() string {
	g, _, _ := strings.Cut(string(k), ".")
	return g
}

// MetricMap holds one metric of type T per key
// Get registers under the write lock; callers keep the pointer and update it lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[Key]*T
	keys  []Key // Sorted
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[Key]*T)}
}

// Get returns the metric for key, registering a zero value on first use
func (m *MetricMap[T]) Get(key Key) *T {
	if ptr, ok := m.Lookup(key); ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ptr, ok := m.items[key]
	if !ok {
		ptr = new(T)
		m.items[key] = ptr
		i, _ := slices.BinarySearch(m.keys, key)
		m.keys = slices.Insert(m.keys, i, key)
	}
	return ptr
}

// Lookup returns the metric for key without registering it
func (m *MetricMap[T]) Lookup(key Key) (*T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ptr, ok := m.items[key]
	return ptr, ok
}

// Range visits metrics in key order
// An empty group visits all of them
func (m *MetricMap[T]) Range(group string, fn func(key Key, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, k := range m.keys {
		if group == "" || k.Group() == group {
			fn(k, m.items[k])
		}
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.keys)
}
