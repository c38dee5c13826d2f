package rwmap

import (
	"sync"
)

type RWMap[K comparable, V any] struct {
	sync.RWMutex
	m map[K]V
}

// NewRWMap creates a map with room for n entries.
func NewRWMap[K comparable, V any](n int) *RWMap[K, V] {
	return &RWMap[K, V]{
		m: make(map[K]V, n),
	}
}

func (m *RWMap[K, V]) Get(key K) (V, bool) { // read under the read lock
	m.RLock()
	defer m.RUnlock()
	v, existed := m.m[key]
	return v, existed
}

func (m *RWMap[K, V]) Set(key K, v V) {
	m.Lock()
	defer m.Unlock()
	m.m[key] = v
}

// GetOrSet returns the value stored for key, storing v first when key is
// absent. loaded is true when the value was already there.
func (m *RWMap[K, V]) GetOrSet(key K, v V) (actual V, loaded bool) {
	if actual, ok := m.Get(key); ok {
		return actual, true
	}
	m.Lock()
	defer m.Unlock()
	if actual, ok := m.m[key]; ok {
		return actual, true
	}
	m.m[key] = v
	return v, false
}

func (m *RWMap[K, V]) Delete(key K) {
	m.Lock()
	defer m.Unlock()
	delete(m.m, key)
}

func (m *RWMap[K, V]) Clear() {
	m.Lock()
	defer m.Unlock()
	m.m = map[K]V{}
}

func (m *RWMap[K, V]) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.m)
}

// Each calls f for every entry until f returns false. The read lock is
// held for the whole walk, so f must not modify the map.
func (m *RWMap[K, V]) Each(f func(key K, v V) bool) {
	m.RLock()
	defer m.RUnlock()

	for key, v := range m.m {
		if !f(key, v) {
			return
		}
	}
}
