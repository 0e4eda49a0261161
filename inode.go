package hashtrie

// child is the sum type stored in an INode's child array: either another
// INode one level below, or (at the bottom interior level) a leaf. Go has
// no native sum type, so this is expressed as an interface implemented by
// exactly those two concrete types — the same "tagged union via a small
// dispatch surface" §9 calls for.
type child[K comparable, V any] interface {
	isMutable() bool
	markImmutable()
}

func (n *inode[K, V]) isMutable() bool { return n.mutable }
func (l *leaf[K, V]) isMutable() bool  { return l.mutable }

func (n *inode[K, V]) markImmutable() { n.mutable = false }
func (l *leaf[K, V]) markImmutable()  { l.mutable = false }

// inode is an interior trie level: a fixed-power-of-two-fanout array of
// children, all homogeneous (either all *inode[K,V] one level below, or
// all *leaf[K,V] when this is the bottom interior level), per §3.4.
type inode[K comparable, V any] struct {
	children []child[K, V]
	mutable  bool
}

// newINode allocates a mutable interior node with the given fanout, every
// slot pointing at fill (used by the aliasing growth rule and by
// depth-increase, both of which start from a single shared child
// repeated across every slot).
func newINode[K comparable, V any](fanout int, fill child[K, V]) *inode[K, V] {
	children := make([]child[K, V], fanout)
	for i := range children {
		children[i] = fill
	}
	return &inode[K, V]{children: children, mutable: true}
}

// growLazy doubles n's child array by aliasing (§4.3): every existing
// child is duplicated into the new half, and because each is now
// reachable by two paths, every child is marked immutable first. The
// grown node itself is new and mutable (the caller always installs it in
// place of n); the two aliased halves specialize independently as future
// writes CoW-clone through them.
//
// Callers only ever invoke growLazy on an n they already know to be
// mutable (the sole invariant-upheld owner of n's storage, never shared
// with another Container or an aliased sibling), so once n's contents
// have been copied into the grown node, n itself is safe to recycle:
// pool, if non-nil, receives it back.
func (n *inode[K, V]) growLazy(pool *inodePool[K, V], newFanout int) *inode[K, V] {
	old := n.children
	assertf(1, newFanout > len(old) && newFanout%len(old) == 0,
		"growLazy: newFanout %d is not an integer expansion of %d", newFanout, len(old))

	for _, c := range old {
		c.markImmutable()
	}

	grown := pool.get()
	grown.children = make([]child[K, V], newFanout)
	grown.mutable = true
	for i := range grown.children {
		grown.children[i] = old[i%len(old)]
	}

	pool.put(n)
	return grown
}

// cowChild returns a mutable version of the child at idx, cloning it if
// it is currently immutable (because it is shared with some other
// container or aliased sibling), and installs the (possibly new) child
// back into n, which must itself already be mutable. p is the path
// accumulated down to and including this child's slot; it restricts a
// leaf clone to the entries that actually belong under idx.
func (n *inode[K, V]) cowChild(idx int, p path) child[K, V] {
	assertf(1, n.mutable, "cowChild called on immutable inode")

	c := n.children[idx]
	if c.isMutable() {
		return c
	}

	var cloned child[K, V]
	switch t := c.(type) {
	case *leaf[K, V]:
		cloned = t.cloneRestricted(p)
	case *inode[K, V]:
		// t's children are now reachable from both t and the clone.
		for _, gc := range t.children {
			gc.markImmutable()
		}
		cloned = &inode[K, V]{children: append([]child[K, V](nil), t.children...), mutable: true}
	default:
		assertf(1, false, "cowChild: unknown child type %T", c)
		return c
	}
	n.children[idx] = cloned
	return cloned
}

// markImmutableRec clears n's mutability bit and recurses into every
// child that is still mutable; an already-immutable child terminates the
// recursion, since its subtree is already frozen (§4.6).
func (n *inode[K, V]) markImmutableRec() {
	if !n.mutable {
		return
	}
	n.mutable = false
	for _, c := range n.children {
		if !c.isMutable() {
			continue
		}
		switch t := c.(type) {
		case *leaf[K, V]:
			t.markImmutable()
		case *inode[K, V]:
			t.markImmutableRec()
		}
	}
}

// shallowClone copies n's child array (sharing every child) into a fresh,
// mutable node, used by branch (§4.6).
func (n *inode[K, V]) shallowClone() *inode[K, V] {
	return &inode[K, V]{
		children: append([]child[K, V](nil), n.children...),
		mutable:  true,
	}
}
