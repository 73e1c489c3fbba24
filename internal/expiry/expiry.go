// Package expiry provides the lazily-expiring map shared by all
// conversational state stores.
package expiry

import (
	"sync"
	"time"
)

// Map stores one value per key and evicts entries older than TTL at read
// time. Writes unconditionally overwrite (last-write-wins). Correctness does
// not depend on Sweep; it only reclaims memory for keys never read again.
type Map[K comparable, V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[K]entry[V]
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// New creates a Map with the given TTL
func New[K comparable, V any](ttl time.Duration) *Map[K, V] {
	return NewWithClock[K, V](ttl, time.Now)
}

// NewWithClock creates a Map with an injectable clock for tests
func NewWithClock[K comparable, V any](ttl time.Duration, now func() time.Time) *Map[K, V] {
	return &Map[K, V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[K]entry[V]),
	}
}

// Put stores a value, replacing any previous one and refreshing its age
func (m *Map[K, V]) Put(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry[V]{value: value, storedAt: m.now()}
}

// Get returns the value for key. An expired entry is evicted and reported
// as absent, indistinguishable from one that never existed.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	e, ok := m.entries[key]
	if !ok {
		return zero, false
	}
	if m.expired(e) {
		delete(m.entries, key)
		return zero, false
	}
	return e.value, true
}

// Touch refreshes the age of an existing entry without replacing the value.
// Returns false if the entry is absent or already expired.
func (m *Map[K, V]) Touch(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return false
	}
	if m.expired(e) {
		delete(m.entries, key)
		return false
	}
	e.storedAt = m.now()
	m.entries[key] = e
	return true
}

// Delete removes the entry for key, if any
func (m *Map[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Sweep evicts all expired entries and returns how many were removed
func (m *Map[K, V]) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries including not-yet-swept expired ones
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Map[K, V]) expired(e entry[V]) bool {
	return m.now().Sub(e.storedAt) > m.ttl
}
