package lru

import "iter"

// Cursor traverses a cache's entries in most-recently-used to
// least-recently-used order. It supports bidirectional traversal (Next
// from the front, NextBack from the back, meeting in the middle with no
// duplicates or omissions) and duplication via Clone. A Cursor is fused:
// once Next/NextBack report no more entries, they continue to do so.
//
// A Cursor reflects a snapshot of list structure at the time it was
// created; mutating the cache while a Cursor is in use is not supported.
type Cursor[K comparable, V any] struct {
	front *node[K, V]
	back  *node[K, V]
	len   int
}

// Iter returns a Cursor over the cache's entries, MRU first.
func (c *Cache[K, V]) Iter() *Cursor[K, V] {
	return &Cursor[K, V]{front: c.list.head.next, back: c.list.tail.prev, len: c.list.size}
}

// Len returns the number of entries remaining to be yielded.
func (cur *Cursor[K, V]) Len() int { return cur.len }

// Next returns the next entry walking from most- toward least-recently
// used. ok is false once the cursor is exhausted.
func (cur *Cursor[K, V]) Next() (k K, v V, ok bool) {
	if cur.len == 0 {
		return k, v, false
	}
	k, v = cur.front.key, cur.front.val
	cur.front = cur.front.next
	cur.len--
	return k, v, true
}

// NextBack returns the next entry walking from least- toward
// most-recently used — the reverse direction from Next. ok is false once
// the cursor is exhausted.
func (cur *Cursor[K, V]) NextBack() (k K, v V, ok bool) {
	if cur.len == 0 {
		return k, v, false
	}
	k, v = cur.back.key, cur.back.val
	cur.back = cur.back.prev
	cur.len--
	return k, v, true
}

// Clone returns an independent Cursor starting from the same position.
func (cur *Cursor[K, V]) Clone() *Cursor[K, V] {
	return &Cursor[K, V]{front: cur.front, back: cur.back, len: cur.len}
}

// MutCursor is Cursor's mutable counterpart: Next/NextBack yield a
// pointer into the entry's value slot instead of a copy. It does not
// support Clone — two cursors holding overlapping mutable access to the
// same entries is exactly what spec section 5 rules out.
type MutCursor[K comparable, V any] struct {
	front *node[K, V]
	back  *node[K, V]
	len   int
}

// IterMut returns a MutCursor over the cache's entries, MRU first.
func (c *Cache[K, V]) IterMut() *MutCursor[K, V] {
	return &MutCursor[K, V]{front: c.list.head.next, back: c.list.tail.prev, len: c.list.size}
}

func (cur *MutCursor[K, V]) Len() int { return cur.len }

func (cur *MutCursor[K, V]) Next() (k K, v *V, ok bool) {
	if cur.len == 0 {
		return k, nil, false
	}
	n := cur.front
	cur.front = cur.front.next
	cur.len--
	return n.key, &n.val, true
}

func (cur *MutCursor[K, V]) NextBack() (k K, v *V, ok bool) {
	if cur.len == 0 {
		return k, nil, false
	}
	n := cur.back
	cur.back = cur.back.prev
	cur.len--
	return n.key, &n.val, true
}

// Drain consumes the cache, yielding (key, value) pairs in
// least-recently-used-first order — the reverse of Iter. Each call to
// Next is exactly a PopLast; dropping a Drain mid-traversal (simply
// ceasing to call Next) leaves the cache holding whatever entries were
// not yet drained.
type Drain[K comparable, V any] struct {
	c *Cache[K, V]
}

// Drain returns a by-move iterator that empties the cache as it is
// consumed, LRU entry first.
func (c *Cache[K, V]) Drain() *Drain[K, V] {
	return &Drain[K, V]{c: c}
}

func (d *Drain[K, V]) Len() int { return d.c.Len() }

func (d *Drain[K, V]) Next() (k K, v V, ok bool) {
	return d.c.PopLast()
}

// All returns a range-over-func sequence of the cache's entries, MRU
// first — the idiomatic entry point for `for k, v := range cache.All()`.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		cur := c.Iter()
		for {
			k, v, ok := cur.Next()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}

// Backward returns a range-over-func sequence of the cache's entries,
// LRU first, without consuming the cache (unlike Drain).
func (c *Cache[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		cur := c.Iter()
		for {
			k, v, ok := cur.NextBack()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}
