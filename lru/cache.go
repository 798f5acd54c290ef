// Package lru implements a generic, bounded least-recently-used cache.
//
// The cache is a single-threaded mutable container: every operation other
// than the pure accessors (Len, Cap, IsEmpty, Contains, Peek, PeekMut,
// PeekLast and the non-consuming iterators) may reorder the recency list,
// including Get. Callers needing concurrent access must
// serialize through an external lock — see internal/blobcache.Safe for
// the wrapper this repository's blob service uses.
//
// Internally the cache is two cooperating structures: a doubly linked
// recency list (list.go) ordering entries from most- to least-recently
// used, and a bucketed hash index (index.go) mapping keys to the same
// node pointers in O(1). A node is live iff it is simultaneously
// reachable from both.
package lru

import (
	"errors"
	"math"
)

// ErrInvalidCapacity is returned by New/NewWithHash when cap <= 0.
// Rust's NonZeroUsize enforces this at the type level, at the call site;
// Go has no non-zero integer type, so the cache surfaces the precondition
// violation as an error instead of panicking.
var ErrInvalidCapacity = errors.New("lru: capacity must be positive")

// Unbounded is the capacity used by Unbounded caches: operationally the
// same engine with an eviction threshold no real workload can reach.
const Unbounded = math.MaxInt

// Cache is a generic, bounded key/value container with O(1) lookup,
// insertion, deletion, promotion, and demotion, evicting the least
// recently used entry on overflow. It is not safe for concurrent use.
type Cache[K comparable, V any] struct {
	cap   int
	list  *recencyList[K, V]
	index *hashIndex[K, V]
}

// New creates a cache bounded to cap entries. Returns ErrInvalidCapacity
// if cap <= 0.
func New[K comparable, V any](cap int) (*Cache[K, V], error) {
	if cap <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Cache[K, V]{
		cap:   cap,
		list:  newRecencyList[K, V](),
		index: defaultHashIndex[K, V](),
	}, nil
}

// UnboundedCache creates a cache with no automatic eviction.
func UnboundedCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		cap:   Unbounded,
		list:  newRecencyList[K, V](),
		index: defaultHashIndex[K, V](),
	}
}

// NewWithHash creates a cache bounded to cap entries, using the supplied
// hash and equality functions for the key index instead of the default
// hash/maphash.Comparable + == pair. This is the custom-hash-variant
// constructor (spec: with_hasher).
func NewWithHash[K comparable, V any](cap int, hash func(K) uint64, eq func(a, b K) bool) (*Cache[K, V], error) {
	if cap <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Cache[K, V]{
		cap:   cap,
		list:  newRecencyList[K, V](),
		index: newHashIndex[K, V](hash, eq),
	}, nil
}

// Len returns the number of entries currently stored.
func (c *Cache[K, V]) Len() int { return c.index.len() }

// Cap returns the cache's capacity.
func (c *Cache[K, V]) Cap() int { return c.cap }

// IsEmpty reports whether the cache holds no entries.
func (c *Cache[K, V]) IsEmpty() bool { return c.index.len() == 0 }

// Contains reports whether k is present, without affecting recency order.
func (c *Cache[K, V]) Contains(k K) bool {
	_, ok := c.index.get(k)
	return ok
}

// Put inserts or updates k with value v.
//
// If k is already present, its value is replaced and it is moved to the
// front (most recently used); the previous value is returned. Otherwise,
// if there is room, a new entry is attached at the front. If the cache is
// full, the current least-recently-used entry is recycled in place (its
// key/value are overwritten, and it is reindexed and moved to the front);
// its prior value is returned as the evicted value.
//
// Put and Push differ only in what they return — the resulting cache
// state is identical either way.
func (c *Cache[K, V]) Put(k K, v V) (V, bool) {
	if n, ok := c.index.get(k); ok {
		old := n.val
		n.val = v
		c.list.moveToFront(n)
		return old, true
	}

	if c.index.len() < c.cap {
		n := newNode(k, v)
		c.list.attachFront(n)
		c.index.set(n)
		var zero V
		return zero, false
	}

	victim := c.list.detachLast()
	evicted := victim.val
	c.index.delete(victim.key)
	victim.key = k
	victim.val = v
	c.index.set(victim)
	c.list.attachFront(victim)
	return evicted, true
}

// Push behaves exactly like Put, but returns the evicted (key, value)
// pair — whether that eviction came from overwriting an existing key or
// from capacity-driven LRU recycling — instead of only the value.
func (c *Cache[K, V]) Push(k K, v V) (evictedKey K, evictedVal V, evicted bool) {
	if n, ok := c.index.get(k); ok {
		evictedKey, evictedVal = n.key, n.val
		n.val = v
		c.list.moveToFront(n)
		return evictedKey, evictedVal, true
	}

	if c.index.len() < c.cap {
		n := newNode(k, v)
		c.list.attachFront(n)
		c.index.set(n)
		return evictedKey, evictedVal, false
	}

	victim := c.list.detachLast()
	evictedKey, evictedVal = victim.key, victim.val
	c.index.delete(victim.key)
	victim.key = k
	victim.val = v
	c.index.set(victim)
	c.list.attachFront(victim)
	return evictedKey, evictedVal, true
}

// Get looks up k, promoting it to most-recently-used on a hit. Returns
// the zero value and false if absent.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	n, ok := c.index.get(k)
	if !ok {
		var zero V
		return zero, false
	}
	c.list.moveToFront(n)
	return n.val, true
}

// GetMut behaves like Get but returns a pointer into the node's value
// slot so the caller can mutate it in place. As in Get, a hit promotes
// the entry to most-recently-used.
//
// Callers must not hold a GetMut/PeekMut pointer across a subsequent
// mutating call on the same cache (Put/Push/Pop/Resize/... may recycle
// the node it points into) — the cache provides no lifetime tracking for
// this, as Go has no borrow checker.
func (c *Cache[K, V]) GetMut(k K) (*V, bool) {
	n, ok := c.index.get(k)
	if !ok {
		return nil, false
	}
	c.list.moveToFront(n)
	return &n.val, true
}

// Peek looks up k without affecting recency order.
func (c *Cache[K, V]) Peek(k K) (V, bool) {
	n, ok := c.index.get(k)
	if !ok {
		var zero V
		return zero, false
	}
	return n.val, true
}

// PeekMut behaves like Peek but returns a mutable pointer, without
// reordering. See GetMut for the aliasing caveat.
func (c *Cache[K, V]) PeekMut(k K) (*V, bool) {
	n, ok := c.index.get(k)
	if !ok {
		return nil, false
	}
	return &n.val, true
}

// PeekLast returns the key and value currently least recently used,
// without affecting recency order. Returns false if the cache is empty.
func (c *Cache[K, V]) PeekLast() (key K, val V, ok bool) {
	if c.list.empty() {
		return key, val, false
	}
	last := c.list.tail.prev
	return last.key, last.val, true
}

// GetOrInsert returns (a copy of) k's value, inserting factory() under
// k (using Put's eviction policy) if k is absent. factory is invoked at
// most once and never on a hit.
func (c *Cache[K, V]) GetOrInsert(k K, factory func() V) V {
	if n, ok := c.index.get(k); ok {
		c.list.moveToFront(n)
		return n.val
	}
	v := factory()
	c.Put(k, v)
	return v
}

// GetOrInsertMut behaves like GetOrInsert but returns a mutable pointer
// to the stored value.
func (c *Cache[K, V]) GetOrInsertMut(k K, factory func() V) *V {
	if n, ok := c.index.get(k); ok {
		c.list.moveToFront(n)
		return &n.val
	}
	v := factory()
	c.Put(k, v)
	n, _ := c.index.get(k)
	return &n.val
}

// Pop removes k, returning its value. Returns false if absent.
func (c *Cache[K, V]) Pop(k K) (V, bool) {
	n, ok := c.index.get(k)
	if !ok {
		var zero V
		return zero, false
	}
	c.list.detach(n)
	c.index.delete(k)
	return n.val, true
}

// PopEntry removes k, returning both its key and value. Returns false if
// absent.
func (c *Cache[K, V]) PopEntry(k K) (key K, val V, ok bool) {
	n, found := c.index.get(k)
	if !found {
		return key, val, false
	}
	c.list.detach(n)
	c.index.delete(k)
	return n.key, n.val, true
}

// PopLast removes and returns the least recently used entry. Returns
// false if the cache is empty.
func (c *Cache[K, V]) PopLast() (key K, val V, ok bool) {
	n := c.list.detachLast()
	if n == nil {
		return key, val, false
	}
	c.index.delete(n.key)
	return n.key, n.val, true
}

// Promote moves k to most-recently-used. No-op if k is absent.
// Equivalent to Get(k) but without returning a value.
func (c *Cache[K, V]) Promote(k K) {
	if n, ok := c.index.get(k); ok {
		c.list.moveToFront(n)
	}
}

// Demote moves k to least-recently-used — the next eviction candidate.
// No-op if k is absent.
func (c *Cache[K, V]) Demote(k K) {
	if n, ok := c.index.get(k); ok {
		c.list.moveToBack(n)
	}
}

// Resize changes the cache's capacity. If newCap is smaller than the
// current length, the least recently used entries are evicted until the
// new capacity is met. Entries are retained in most-recently-used order
// from the front. Returns ErrInvalidCapacity if newCap <= 0.
func (c *Cache[K, V]) Resize(newCap int) error {
	if newCap <= 0 {
		return ErrInvalidCapacity
	}
	if newCap == c.cap {
		return nil
	}
	for c.index.len() > newCap {
		c.PopLast()
	}
	c.cap = newCap
	return nil
}

// Clear removes all entries. Capacity is unchanged.
func (c *Cache[K, V]) Clear() {
	for !c.list.empty() {
		c.PopLast()
	}
}
