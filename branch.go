package hashtrie

// MarkImmutable freezes c's entire tree in place, in O(number of
// currently-mutable nodes) (§4.6). After this call c.IsMutable reports
// false and every mutating method returns ErrImmutableMutation until a
// mutable version is obtained via Branch or GetMutableVersion.
func (c *Container[K, V]) MarkImmutable() {
	switch t := c.root.(type) {
	case *leaf[K, V]:
		t.markImmutable()
	case *inode[K, V]:
		t.markImmutableRec()
	}
}

// Branch freezes c (if not already frozen) and returns a new, independent
// mutable Container sharing c's entire tree, in O(1) amortized (§4.6).
// Subsequent mutation of either c's later branches or the returned
// Container clones only the nodes actually touched.
func (c *Container[K, V]) Branch() *Container[K, V] {
	c.MarkImmutable()
	out := &Container[K, V]{
		root:   shallowCloneRoot[K, V](c.root),
		n:      c.n,
		config: c.config,
		hasher: c.hasher,
		pool:   c.pool,
	}
	out.origin = out
	return out
}

// shallowCloneRoot returns a fresh, mutable top-level node sharing every
// child of n, so that writes through it never touch n or anything
// reachable only through n (§4.6). A leaf clones via cloneRestricted with
// an empty path (matching every entry); an inode clones via
// shallowClone, copying only its child array.
func shallowCloneRoot[K comparable, V any](n child[K, V]) child[K, V] {
	switch t := n.(type) {
	case *leaf[K, V]:
		return t.cloneRestricted(path{})
	case *inode[K, V]:
		return t.shallowClone()
	default:
		assertf(1, false, "shallowCloneRoot: unknown node type %T", n)
		return n
	}
}

// DoubleBranch freezes c and returns two new mutable Containers, both
// sharing c's tree, leaving c itself frozen (§4.6).
func (c *Container[K, V]) DoubleBranch() (*Container[K, V], *Container[K, V]) {
	return c.Branch(), c.Branch()
}

// GetMutableVersion returns c itself if c is already mutable, or a fresh
// branch otherwise; a convenience for callers that only care that the
// result they get back is writable (§4.6).
func (c *Container[K, V]) GetMutableVersion() *Container[K, V] {
	if c.root.isMutable() {
		return c
	}
	return c.Branch()
}
