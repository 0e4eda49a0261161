package hashtrie

// Delete removes key from c if present (§4.5). removed reports whether a
// key was actually removed. Delete requires c to be mutable. There is no
// configuration shrink on delete: once a container has grown into a
// deeper or wider shape, it keeps that shape even after entries are
// removed, per §4.5 and §9's open question on monotone shape.
func (c *Container[K, V]) Delete(key K) (removed bool, err error) {
	if err := c.checkUsable(); err != nil {
		return false, err
	}
	if !c.root.isMutable() {
		return false, immutableMutationError("delete")
	}

	hash := c.hashOf(key)

	var delta int
	switch root := c.root.(type) {
	case *leaf[K, V]:
		newRoot, d := root.deleteRebuilt(c.hasher, hash, key, path{})
		c.root = newRoot
		delta = d
	case *inode[K, V]:
		d := len(c.config.Fanouts)
		newRoot, dd := c.deleteFromINode(root, 0, d, hash, key, path{})
		c.root = newRoot
		delta = dd
	default:
		assertf(1, false, "Delete: unknown root type %T", c.root)
	}

	c.n += uint64(delta)
	return delta < 0, nil
}

// deleteFromINode mirrors insertIntoINode's descent, but never grows n's
// fanout (a delete never needs more room) and rebuilds the bottom leaf
// via deleteRebuilt instead of insert.
func (c *Container[K, V]) deleteFromINode(n *inode[K, V], depth, d int, hash uint64, key K, p path) (*inode[K, V], int) {
	fanout := len(n.children)
	idx := levelSlot(hash, d, depth, fanout)
	childPath := p.descend(d, depth, fanout, idx)
	ch := n.cowChild(idx, childPath)

	if depth == d-1 {
		lf, ok := ch.(*leaf[K, V])
		assertf(1, ok, "deleteFromINode: expected leaf at bottom interior level, got %T", ch)
		newLf, delta := lf.deleteRebuilt(c.hasher, hash, key, childPath)
		n.children[idx] = newLf
		return n, delta
	}

	childNode, ok := ch.(*inode[K, V])
	assertf(1, ok, "deleteFromINode: expected inode above bottom interior level, got %T", ch)
	newChild, delta := c.deleteFromINode(childNode, depth+1, d, hash, key, childPath)
	n.children[idx] = newChild
	return n, delta
}
