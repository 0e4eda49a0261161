package hashtrie

// Insert sets the value for key, overwriting any existing value (§4.4,
// §6). inserted reports whether a new key was added; replaced reports
// whether an existing key's value was overwritten. Insert requires c to
// be mutable.
func (c *Container[K, V]) Insert(key K, val V) (inserted, replaced bool, err error) {
	if err := c.checkUsable(); err != nil {
		return false, false, err
	}
	if !c.root.isMutable() {
		return false, false, immutableMutationError("insert")
	}

	hash := c.hashOf(key)

	var delta int
	switch root := c.root.(type) {
	case *leaf[K, V]:
		newRoot, d := root.insert(c.hasher, hash, key, val)
		c.root = newRoot
		delta = d
	case *inode[K, V]:
		d := len(c.config.Fanouts)
		newRoot, dd := c.insertIntoINode(root, 0, d, hash, key, val, path{})
		c.root = newRoot
		delta = dd
	default:
		assertf(1, false, "Insert: unknown root type %T", c.root)
	}

	c.n += uint64(delta)
	c.growShapeIfNeeded()

	return delta > 0, delta == 0, nil
}

// insertIntoINode descends into n at interior level depth (0-based,
// root-first, out of d total), lazily growing n's fanout first if the
// current configuration now calls for more children at this level
// (§4.3), cloning the target child via CoW if it is shared, and
// recursing or writing into the bottom-level leaf.
func (c *Container[K, V]) insertIntoINode(n *inode[K, V], depth, d int, hash uint64, key K, val V, p path) (*inode[K, V], int) {
	fanout := c.config.Fanouts[depth]
	if len(n.children) != fanout {
		n = n.growLazy(c.pool, fanout)
	}

	idx := levelSlot(hash, d, depth, fanout)
	childPath := p.descend(d, depth, fanout, idx)
	ch := n.cowChild(idx, childPath)

	if depth == d-1 {
		lf, ok := ch.(*leaf[K, V])
		assertf(1, ok, "insertIntoINode: expected leaf at bottom interior level, got %T", ch)
		newLf, delta := lf.insert(c.hasher, hash, key, val)
		n.children[idx] = newLf
		return n, delta
	}

	childNode, ok := ch.(*inode[K, V])
	assertf(1, ok, "insertIntoINode: expected inode above bottom interior level, got %T", ch)
	newChild, delta := c.insertIntoINode(childNode, depth+1, d, hash, key, val, childPath)
	n.children[idx] = newChild
	return n, delta
}

// growShapeIfNeeded implements §4.4's post-insert configuration check:
// if the population just crossed into a configuration with more interior
// levels than the tree currently has, the root is wrapped in new levels
// (aliasing the old root across every slot, after marking it immutable)
// until depths match. A configuration that merely raises the fanout of
// an already-present level needs no action here — insertIntoINode's
// lazy-grow check picks that up the next time a write descends through
// the stale node, root included.
func (c *Container[K, V]) growShapeIfNeeded() {
	newConfig := configFor(c.n)
	oldDepth := len(c.config.Fanouts)
	newDepth := len(newConfig.Fanouts)

	for oldDepth < newDepth {
		old := c.root
		old.markImmutable()
		fanout := newConfig.Fanouts[oldDepth]
		c.root = newINode[K, V](fanout, old)
		oldDepth++
	}

	c.config = newConfig
}
