// Package cache provides the in-memory stores used for expansions.
package cache

import "sync"

// Store is a mutex-guarded map holding at most one entry per key. Entries
// never expire and are never evicted; a new Set for an existing key
// overwrites silently. Lifetime is the owner's lifetime, so callers
// construct one at startup and inject it rather than sharing ambient state.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[string]T
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{entries: make(map[string]T)}
}

// Get retrieves the entry for key.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores the entry for key, replacing any previous one.
func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// Update applies fn to the entry for key under the store lock and stores
// the result. fn may mutate a pointer entry in place and return it; any
// reads or copies of the entry that must not race with other writers
// belong inside fn. Returns false when key is absent, and fn is not called.
func (s *Store[T]) Update(key string, fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	if !ok {
		return false
	}
	s.entries[key] = fn(v)
	return true
}

// Len returns the number of entries.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
