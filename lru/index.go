package lru

import "hash/maphash"

// hashFunc computes a 64-bit, non-cryptographic hash of a key.
type hashFunc[K comparable] func(K) uint64

// eqFunc reports whether two keys are equal.
type eqFunc[K comparable] func(a, b K) bool

// hashIndex is the cache's O(1) key -> node lookup structure. It is kept
// as its own bucketed hash table — rather than a bare Go map[K]*node —
// so that callers can supply their own hash and equality functions
// (spec: "custom-hash variant", the with_hasher constructor). Collisions
// are resolved by chaining within a bucket and falling back to eq.
//
// A node is reachable from the index iff it is currently attached to the
// recency list; the two stay in lockstep by construction (every mutator
// in cache.go updates both under the same call).
type hashIndex[K comparable, V any] struct {
	hash    hashFunc[K]
	eq      eqFunc[K]
	buckets map[uint64][]*node[K, V]
	size    int
}

func newHashIndex[K comparable, V any](hash hashFunc[K], eq eqFunc[K]) *hashIndex[K, V] {
	return &hashIndex[K, V]{
		hash:    hash,
		eq:      eq,
		buckets: make(map[uint64][]*node[K, V]),
	}
}

// defaultHashIndex builds an index using the standard library's generic
// comparable hashing (hash/maphash.Comparable, Go 1.24+) and Go's builtin
// equality. Each cache gets its own random seed, matching Rust's
// RandomState default hasher behavior (randomized per process/instance,
// not a fixed constant, so that hash-flooding attacks on externally
// supplied keys can't be precomputed).
func defaultHashIndex[K comparable, V any]() *hashIndex[K, V] {
	seed := maphash.MakeSeed()
	hash := func(k K) uint64 { return maphash.Comparable(seed, k) }
	eq := func(a, b K) bool { return a == b }
	return newHashIndex[K, V](hash, eq)
}

func (h *hashIndex[K, V]) get(k K) (*node[K, V], bool) {
	hk := h.hash(k)
	for _, n := range h.buckets[hk] {
		if h.eq(n.key, k) {
			return n, true
		}
	}
	return nil, false
}

// set indexes n under its own key. The caller guarantees no entry for
// this key already exists (cache.go always checks get first).
func (h *hashIndex[K, V]) set(n *node[K, V]) {
	hk := h.hash(n.key)
	h.buckets[hk] = append(h.buckets[hk], n)
	h.size++
}

// delete removes the index entry for k, if any. The underlying node
// itself is untouched; callers drop/detach it separately.
func (h *hashIndex[K, V]) delete(k K) {
	hk := h.hash(k)
	bucket := h.buckets[hk]
	for i, n := range bucket {
		if h.eq(n.key, k) {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			if len(bucket) == 0 {
				delete(h.buckets, hk)
			} else {
				h.buckets[hk] = bucket
			}
			h.size--
			return
		}
	}
}

func (h *hashIndex[K, V]) len() int {
	return h.size
}
