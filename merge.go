package hashtrie

// Merge returns a new mutable Container containing every entry of c and
// of each of others, with later containers in the argument list (others,
// left to right) overwriting earlier ones, including c itself, on key
// collision (§4.10). c is left unmodified but frozen (if it was not
// already); others are only read, and keep their mutability.
func Merge[K comparable, V any](c *Container[K, V], others ...*Container[K, V]) *Container[K, V] {
	out := c.Branch()
	out.MergeInplace(others...)
	return out
}

// MergeInplace inserts every entry of each of others into c, with later
// containers overwriting earlier ones and c's own existing entries on
// collision. c must be mutable.
func (c *Container[K, V]) MergeInplace(others ...*Container[K, V]) {
	for _, o := range others {
		o.forEach(func(k K, v V, hash uint64) bool {
			_, _, err := c.Insert(k, v)
			assertf(1, err == nil, "MergeInplace: Insert on the merge target failed: %v", err)
			return true
		})
	}
}

// MergeWith is like Merge, but on key collision calls combine(old, new)
// to produce the stored value instead of letting new silently win.
func MergeWith[K comparable, V any](c *Container[K, V], combine func(old, new V) V, others ...*Container[K, V]) *Container[K, V] {
	out := c.Branch()
	for _, o := range others {
		o.forEach(func(k K, v V, hash uint64) bool {
			var err error
			if existing, ok := out.lookup(k); ok {
				_, _, err = out.Insert(k, combine(existing, v))
			} else {
				_, _, err = out.Insert(k, v)
			}
			assertf(1, err == nil, "MergeWith: Insert on the merge target failed: %v", err)
			return true
		})
	}
	return out
}

// Equal reports whether a and b contain the same set of (key, value)
// pairs, compared with ==. It short-circuits on shared structure the
// same way SetDiff does: identical subtrees at the same path are never
// visited.
func Equal[K comparable, V comparable](a, b *Container[K, V]) bool {
	if a.n != b.n {
		return false
	}
	return len(SetDiff(a, b)) == 0 && len(SetDiff(b, a)) == 0
}

func (c *Container[K, V]) forEach(fn func(k K, v V, hash uint64) bool) bool {
	return forEachEntryUnder(c.root, len(c.config.Fanouts), 0, path{}, fn)
}
