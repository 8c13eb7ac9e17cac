// Package cache provides the time-boxed single-value cache backing the
// record loader. There is one global entry; mutation is a coarse
// clear-then-rebuild, never an in-place edit.
package cache

import (
	"sync"
	"time"
)

// Value caches a single value with a TTL. The zero duration disables
// caching entirely (every Get misses).
type Value[T any] struct {
	mu        sync.Mutex
	ttl       time.Duration
	data      T
	set       bool
	expiresAt time.Time
}

func NewValue[T any](ttl time.Duration) *Value[T] {
	return &Value[T]{ttl: ttl}
}

// Get returns the cached value if present and not expired.
func (v *Value[T]) Get() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var zero T
	if !v.set || time.Now().After(v.expiresAt) {
		v.set = false
		return zero, false
	}
	return v.data, true
}

// Set stores the value and restarts the TTL window.
func (v *Value[T]) Set(data T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.ttl <= 0 {
		return
	}
	v.data = data
	v.set = true
	v.expiresAt = time.Now().Add(v.ttl)
}

// Clear drops the cached value. Called after a successful write or a
// reconciliation.
func (v *Value[T]) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	var zero T
	v.data = zero
	v.set = false
}
