package hashtrie

// Get returns the value associated with key, or ErrMissingKey wrapped
// with the key if it is absent (§4.7).
func (c *Container[K, V]) Get(key K) (V, error) {
	var zero V
	if err := c.checkUsable(); err != nil {
		return zero, err
	}
	val, ok := c.lookup(key)
	if !ok {
		return zero, missingKeyError(key)
	}
	return val, nil
}

// GetOr returns the value associated with key, or def if absent.
func (c *Container[K, V]) GetOr(key K, def V) V {
	if val, ok := c.lookup(key); ok {
		return val
	}
	return def
}

// ContainsKey reports whether key is present.
func (c *Container[K, V]) ContainsKey(key K) bool {
	_, ok := c.lookup(key)
	return ok
}

// ContainsPair reports whether key is present with exactly val, compared
// with ==.
func (c *Container[K, V]) ContainsPair(key K, val V) bool {
	v, ok := c.lookup(key)
	if !ok {
		return false
	}
	return any(v) == any(val)
}

func (c *Container[K, V]) lookup(key K) (V, bool) {
	hash := c.hashOf(key)
	n := c.root
	depth := 0
	d := len(c.config.Fanouts)

	for {
		switch t := n.(type) {
		case *leaf[K, V]:
			return t.lookup(c.hasher, hash, key)
		case *inode[K, V]:
			fanout := len(t.children)
			idx := levelSlot(hash, d, depth, fanout)
			n = t.children[idx]
			depth++
		default:
			var zero V
			assertf(1, false, "lookup: unknown node type %T", n)
			return zero, false
		}
	}
}
