package hashtrie

import "github.com/hashtrie/hashtrie/internal/bitset"

// maxProbe bounds how many slots an insert/lookup will examine in a leaf
// before giving up (lookup) or growing the leaf (insert), per §4.2.
const maxProbe = 16

// leafSizes is the fixed capacity growth sequence from §3.3: each
// subsequent size is roughly ceil(5/4) of the prior, aligned to this
// literal list. Beyond the list, leafTableSize extrapolates by the same
// ceil(5/4) rule.
var leafSizes = []int{
	1, 2, 3, 4, 5, 6, 8, 11, 13, 15, 19, 23, 27, 33, 41, 47, 59, 73, 89,
	113, 127, 147, 163, 191, 233,
}

// leafTableSize returns the smallest listed (or extrapolated) capacity
// able to hold count entries with headroom, per the "rough capacity =
// ceil(11*N/10)" rule from §9's open question (a); clamped to >= 1 so
// that count == 0 never collapses to a zero-capacity leaf.
func leafTableSize(count int) int {
	target := (count*11 + 9) / 10
	if target < 1 {
		target = 1
	}
	for _, sz := range leafSizes {
		if sz >= target {
			return sz
		}
	}
	sz := leafSizes[len(leafSizes)-1]
	for sz < target {
		sz = (sz*5 + 3) / 4
	}
	return sz
}

// entry is one occupied slot of a leaf.
type entry[K any, V any] struct {
	key  K
	val  V
	hash uint64
}

// leaf is a small open-addressed hash table with xor probing (§3.3). It
// is the bottom level of the trie; a leaf alone is also a valid root for
// tiny containers.
type leaf[K comparable, V any] struct {
	occ     bitset.BitSet
	entries []entry[K, V]
	mutable bool
}

// newLeaf allocates an empty, mutable leaf of the given capacity.
func newLeaf[K comparable, V any](capacity int) *leaf[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &leaf[K, V]{
		entries: make([]entry[K, V], capacity),
		mutable: true,
	}
}

// probeSlot returns the slot visited at probe step i for a leaf of n
// slots, per §4.2's "1 + ((h XOR i) mod N)" rule translated to 0-based
// indexing (the "+1" in the spec's formula exists only to address a
// 1-based array; mod N over a 0-based array is the same sequence).
func probeSlot(h uint32, i, n int) int {
	return int((uint64(h) ^ uint64(i)) % uint64(n))
}

// find looks for key (with the given hash) in the leaf, probing up to
// min(maxProbe, N)-1 steps. It returns the slot and true on a hit, the
// first empty slot encountered and false on a clean miss, or (-1, false)
// if the probe bound was exhausted without finding an empty slot (which
// an insert must treat as "grow the leaf").
func (l *leaf[K, V]) find(h Hasher[K], hash uint64, key K) (slot int, found bool) {
	n := len(l.entries)
	sel := leafSelector(hash)
	limit := min(maxProbe, n)

	for i := range limit {
		s := probeSlot(sel, i, n)
		if !l.occ.Test(uint(s)) {
			return s, false
		}
		e := &l.entries[s]
		// identity-then-equality, per §4.2: a direct == first (covers
		// pointer identity and most value types cheaply), falling back
		// to the Hasher's notion of equality.
		if e.key == key || (h != nil && h.Equal(e.key, key)) {
			return s, true
		}
	}
	return -1, false
}

// lookup returns the value for key if present.
func (l *leaf[K, V]) lookup(h Hasher[K], hash uint64, key K) (val V, ok bool) {
	slot, found := l.find(h, hash, key)
	if !found {
		return val, false
	}
	return l.entries[slot].val, true
}

// insert sets (key, val) into the leaf, overwriting in place on a
// matching key (size delta 0) or writing into the first empty probed
// slot (size delta +1). If the probe bound is exhausted, it grows: a
// fresh leaf at the next capacity is built, every existing entry is
// reinserted, and the new pair is inserted into that. The grown leaf is
// always returned; callers must install it in the parent regardless of
// whether growth happened.
func (l *leaf[K, V]) insert(h Hasher[K], hash uint64, key K, val V) (out *leaf[K, V], delta int) {
	slot, found := l.find(h, hash, key)
	if found {
		l.entries[slot].val = val
		return l, 0
	}
	if slot >= 0 {
		l.entries[slot] = entry[K, V]{key: key, val: val, hash: hash}
		l.occ.Set(uint(slot))
		return l, 1
	}

	grown := newLeaf[K, V](leafTableSize(len(l.entries)))
	for i := range l.entries {
		if l.occ.Test(uint(i)) {
			e := l.entries[i]
			grown.rawInsert(e.hash, e.key, e.val)
		}
	}
	grown.rawInsert(hash, key, val)
	return grown, 1
}

// rawInsert inserts a key known to be absent into a freshly built leaf,
// without looking for an existing match (used while rebuilding). If no
// empty slot lies within the probe bound, the leaf is first rebuilt in
// place at the next capacity, so no entry is ever dropped.
func (l *leaf[K, V]) rawInsert(hash uint64, key K, val V) {
	n := len(l.entries)
	sel := leafSelector(hash)
	limit := min(maxProbe, n)
	for i := range limit {
		s := probeSlot(sel, i, n)
		if !l.occ.Test(uint(s)) {
			l.entries[s] = entry[K, V]{key: key, val: val, hash: hash}
			l.occ.Set(uint(s))
			return
		}
	}
	old := *l
	*l = *newLeaf[K, V](leafTableSize(n))
	for i := range old.entries {
		if old.occ.Test(uint(i)) {
			l.rawInsert(old.entries[i].hash, old.entries[i].key, old.entries[i].val)
		}
	}
	l.rawInsert(hash, key, val)
}

// deleteRebuilt always allocates a fresh leaf of the same capacity and
// reinserts every entry except the matching key (§4.2): returning a
// fresh leaf keeps the invariant that probe sequences never skip an
// empty slot, something an in-place tombstone-free delete cannot
// preserve. p restricts which entries are copied, per §4.3; entries
// outside the path belong to an aliased sibling and are left for it to
// rebuild independently.
func (l *leaf[K, V]) deleteRebuilt(h Hasher[K], hash uint64, key K, p path) (out *leaf[K, V], delta int) {
	_, found := l.find(h, hash, key)

	out = newLeaf[K, V](len(l.entries))
	removed := 0
	for i := range l.entries {
		if !l.occ.Test(uint(i)) {
			continue
		}
		e := l.entries[i]
		if !p.matches(e.hash) {
			continue
		}
		if e.key == key || (h != nil && h.Equal(e.key, key)) {
			removed = 1
			continue
		}
		out.rawInsert(e.hash, e.key, e.val)
	}
	if !found {
		return out, 0
	}
	return out, -removed
}

// cloneRestricted rebuilds a leaf containing only the entries matching
// path p, for the CoW clone of a shared leaf (§4.2). It is used on the
// insert/delete descent path when a write must clone a leaf reached
// through an aliased INode, and by Branch for a leaf root.
func (l *leaf[K, V]) cloneRestricted(p path) *leaf[K, V] {
	out := newLeaf[K, V](leafTableSize(l.pathCount(p)))
	for i := range l.entries {
		if !l.occ.Test(uint(i)) {
			continue
		}
		e := l.entries[i]
		if p.matches(e.hash) {
			out.rawInsert(e.hash, e.key, cloneVal(e.val))
		}
	}
	return out
}

// count returns the number of occupied slots.
func (l *leaf[K, V]) count() int {
	return l.occ.Count()
}

// pathCount returns the number of occupied slots matching path p.
func (l *leaf[K, V]) pathCount(p path) int {
	n := 0
	for i := range l.entries {
		if l.occ.Test(uint(i)) && p.matches(l.entries[i].hash) {
			n++
		}
	}
	return n
}

// forEach invokes fn for every occupied entry, in slot order.
func (l *leaf[K, V]) forEach(fn func(k K, v V, hash uint64) bool) bool {
	for i := range l.entries {
		if !l.occ.Test(uint(i)) {
			continue
		}
		e := l.entries[i]
		if !fn(e.key, e.val, e.hash) {
			return false
		}
	}
	return true
}
