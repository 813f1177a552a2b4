// Package cache provides a single-slot read cache with explicit
// invalidation. The record store keeps one slot per collection so a load
// only hits the backing store once until a write replaces the value.
package cache

import "sync"

// Slot holds at most one cached value. The zero value is an empty slot.
type Slot[T any] struct {
	mu    sync.Mutex
	value T
	valid bool
}

// Get returns the cached value and whether one is present.
func (s *Slot[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.valid
}

// Set replaces the cached value.
func (s *Slot[T]) Set(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.valid = true
}

// Invalidate empties the slot; the next Get misses.
func (s *Slot[T]) Invalidate() {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = zero
	s.valid = false
}
