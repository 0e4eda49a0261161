package hashtrie

// Pair is a single key/value entry, returned by SetDiff.
type Pair[K comparable, V any] struct {
	Key K
	Val V
}

// SetDiff returns every entry present in a that is absent from b or
// present with a different value, compared with == (§4.8). When a and b
// share structure (the common case for two branches of the same
// lineage), SetDiff prunes any subtree reachable by the same pointer
// identity at the same path in both trees without visiting it, giving
// it cost proportional to the number of mutations since the two
// diverged rather than to either container's size.
func SetDiff[K comparable, V comparable](a, b *Container[K, V]) []Pair[K, V] {
	var out []Pair[K, V]
	diffChildren(a.root, b, path{}, &out)
	return out
}

// diffChildren walks ca (a subtree of a's tree) looking for entries
// absent or changed relative to b, restricted to path p. It only
// descends into cb directly when ca and cb are structurally aligned
// (same concrete type, and for inodes the same fanout); otherwise it
// falls back to looking each of ca's entries up in b by key, which is
// always correct but forgoes the identity-pruning fast path — this only
// happens across a shape boundary (differing configuration depth or
// fanout between the two containers), a rare edge case rather than the
// steady state of repeated branch-and-mutate.
func diffChildren[K comparable, V comparable](ca child[K, V], b *Container[K, V], p path, out *[]Pair[K, V]) {
	cb := lookupNodeAtPath(b, p)
	if cb != nil && sameIdentity[K, V](ca, cb) {
		return
	}

	d := len(b.config.Fanouts)
	depth := pathDepth(p, d)

	la, aIsLeaf := ca.(*leaf[K, V])
	lb, bIsLeaf := cb.(*leaf[K, V])

	switch {
	case aIsLeaf && bIsLeaf:
		diffLeaves(la, lb, b.hasher, p, out)
	default:
		na, aIsNode := ca.(*inode[K, V])
		nb, bIsNode := cb.(*inode[K, V])
		if aIsNode && bIsNode && len(na.children) == len(nb.children) {
			for idx, next := range na.children {
				childPath := p.descend(d, depth, len(na.children), idx)
				diffChildren(next, b, childPath, out)
			}
			return
		}
		// shape mismatch: fall back to per-entry lookup against b.
		forEachEntryUnder(ca, d, depth, p, func(k K, v V, hash uint64) bool {
			bv, ok := b.lookup(k)
			if !ok || bv != v {
				*out = append(*out, Pair[K, V]{Key: k, Val: v})
			}
			return true
		})
	}
}

func diffLeaves[K comparable, V comparable](la, lb *leaf[K, V], h Hasher[K], p path, out *[]Pair[K, V]) {
	la.forEach(func(k K, v V, hash uint64) bool {
		if !p.matches(hash) {
			return true
		}
		if lb == nil {
			*out = append(*out, Pair[K, V]{Key: k, Val: v})
			return true
		}
		bv, ok := lb.lookup(h, hash, k)
		if !ok || bv != v {
			*out = append(*out, Pair[K, V]{Key: k, Val: v})
		}
		return true
	})
}

// forEachEntryUnder walks every entry reachable from n, restricted to
// path p, descending through d total interior levels starting at depth.
// Threading p.descend through every inode level (rather than reusing the
// same p for every child) is what keeps a shared, aliased subtree (§4.3)
// from being visited once per alias: each child's narrower path only
// matches the entries that actually belong under that specific slot.
func forEachEntryUnder[K comparable, V any](n child[K, V], d, depth int, p path, fn func(k K, v V, hash uint64) bool) bool {
	switch t := n.(type) {
	case *leaf[K, V]:
		cont := true
		t.forEach(func(k K, v V, hash uint64) bool {
			if !p.matches(hash) {
				return true
			}
			cont = fn(k, v, hash)
			return cont
		})
		return cont
	case *inode[K, V]:
		fanout := len(t.children)
		for idx, c := range t.children {
			childPath := p.descend(d, depth, fanout, idx)
			if !forEachEntryUnder(c, d, depth+1, childPath, fn) {
				return false
			}
		}
		return true
	}
	return true
}

// lookupNodeAtPath descends b's tree along the same index sequence that
// produced p, returning the node occupying that path. If b's tree ends
// in a leaf above p's depth, or p does not constrain the next level, it
// returns the deepest node reached instead; it never returns nil.
func lookupNodeAtPath[K comparable, V any](b *Container[K, V], p path) child[K, V] {
	n := b.root
	depth := 0
	d := len(b.config.Fanouts)
	for {
		nd, ok := n.(*inode[K, V])
		if !ok {
			return n
		}
		if depth >= d {
			return n
		}
		fanout := len(nd.children)
		idx := pathIndexAt(p, d, depth, fanout)
		if idx < 0 {
			return n
		}
		n = nd.children[idx]
		depth++
	}
}

// pathDepth recovers how many interior levels p has already descended
// through, given total depth d, by finding the shallowest level whose
// mask bits are not yet set.
func pathDepth(p path, d int) int {
	depth := 0
	for depth < d {
		shift := levelShift(d, depth)
		if (p.mask>>shift)&0xFF == 0 {
			return depth
		}
		depth++
	}
	return d
}

// pathIndexAt extracts the child index p.descend encoded for interior
// level depth (out of d total), or -1 if p does not constrain that
// level (meaning it was produced with a different depth than d).
func pathIndexAt(p path, d, depth, fanout int) int {
	shift := levelShift(d, depth)
	mask := uint64(fanout - 1) << shift
	if p.mask&mask != mask {
		return -1
	}
	return int((p.hash & mask) >> shift)
}

func sameIdentity[K comparable, V any](a, b child[K, V]) bool {
	switch ta := a.(type) {
	case *leaf[K, V]:
		tb, ok := b.(*leaf[K, V])
		return ok && ta == tb
	case *inode[K, V]:
		tb, ok := b.(*inode[K, V])
		return ok && ta == tb
	}
	return false
}
