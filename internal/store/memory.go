// internal/store/memory.go
//
// In-memory keyed store, used as the asset resolution cache.
//
// Characteristics:
//   - Values keyed by string in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Never evicts; state is lost when the process restarts.

package store

import "sync"

// Store defines the interface for a keyed value cache.
// Implementations may be backed by memory (this package), Redis, etc.
type Store[V any] interface {
	// Get returns the value stored under key, if any.
	Get(key string) (V, bool)

	// Put stores or replaces the value under key.
	Put(key string, v V)

	// Delete removes key; missing keys are ignored.
	Delete(key string)

	// Len reports the number of stored keys.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory[V any] struct {
	mu     sync.RWMutex // guards values
	values map[string]V
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore[V any]() Store[V] {
	return &memory[V]{values: make(map[string]V)}
}

func (m *memory[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *memory[V]) Put(key string, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = v
}

func (m *memory[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

func (m *memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
