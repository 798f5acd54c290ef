// Package blobcache wraps the single-threaded lru.Cache in the exclusive
// lock the spec requires for concurrent access. It is deliberately thin:
// all cache semantics live in lru; this package only serializes callers.
package blobcache

import (
	"sync"

	apperrors "github.com/p-blackswan/blobcache/internal/errors"
	"github.com/p-blackswan/blobcache/lru"
)

// Safe wraps an *lru.Cache[K, V] with a mutex so it can be shared across
// goroutines (HTTP handlers, in this service's case).
//
// A plain sync.Mutex is used rather than a sync.RWMutex: nearly every
// cache operation reorders the recency list — including Get — so readers
// and writers must serialize regardless, and a reader-preferring lock
// buys nothing.
type Safe[K comparable, V any] struct {
	mu sync.Mutex
	c  *lru.Cache[K, V]
}

// NewBounded wraps a bounded cache of the given capacity. A non-positive
// cap surfaces lru.ErrInvalidCapacity wrapped in an apperrors.CacheError,
// so callers can classify the failure (errors.Is still reaches the
// underlying lru sentinel through CacheError.Unwrap) without importing
// the lru package's error type directly.
func NewBounded[K comparable, V any](cap int) (*Safe[K, V], error) {
	c, err := lru.New[K, V](cap)
	if err != nil {
		return nil, apperrors.NewCacheError("new_bounded", "invalid_capacity", err)
	}
	return &Safe[K, V]{c: c}, nil
}

// NewUnbounded wraps an unbounded cache.
func NewUnbounded[K comparable, V any]() *Safe[K, V] {
	return &Safe[K, V]{c: lru.UnboundedCache[K, V]()}
}

// Put stores v under k, returning the evicted value (if any) exactly as
// lru.Cache.Put does.
func (s *Safe[K, V]) Put(k K, v V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Put(k, v)
}

// Contains reports whether k is present, without affecting recency order.
func (s *Safe[K, V]) Contains(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Contains(k)
}

// Get looks up k, promoting it to most-recently-used on a hit.
func (s *Safe[K, V]) Get(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Get(k)
}

// Len returns the current number of entries.
func (s *Safe[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Len()
}

// Cap returns the cache's capacity.
func (s *Safe[K, V]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Cap()
}
