package hashtrie

import "iter"

// All returns a push-style iterator over every (key, value) pair in c,
// in an unspecified but stable-for-an-unmutated-container order (§4.9).
// It is safe to call concurrently with reads of other, unrelated
// containers, but not with concurrent mutation of c itself.
func (c *Container[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		d := len(c.config.Fanouts)
		forEachEntryUnder(c.root, d, 0, path{}, func(k K, v V, hash uint64) bool {
			return yield(k, v)
		})
	}
}

// iterFrame is one level of Iterator's explicit descent stack: the node
// at this level, the path accumulated down to (but not including) it,
// the depth that path was built at, and the index of the next child (or
// entry) within it still to be visited. Carrying path/depth per frame,
// rather than reusing one path for the whole descent, is what lets the
// leaf level filter out entries that don't belong under the specific
// chain of child indices this frame was reached through — without it, an
// aliased subtree reachable from more than one parent slot (§4.3) would
// be visited, and its entries yielded, once per alias.
type iterFrame[K comparable, V any] struct {
	node  child[K, V]
	path  path
	depth int
	next  int
}

// Iterator is a pull-style cursor over a Container's entries, offered
// alongside All for callers that need to interleave iteration with other
// work rather than hand a closure to a push-style loop (§4.9, §9). Its
// zero value is not usable; construct with NewIterator.
type Iterator[K comparable, V any] struct {
	stack []iterFrame[K, V]
	depth int
	key   K
	val   V
	done  bool
}

// NewIterator returns an Iterator positioned before the first entry of
// c. c must not be mutated while the Iterator is in use.
func NewIterator[K comparable, V any](c *Container[K, V]) *Iterator[K, V] {
	it := &Iterator[K, V]{depth: len(c.config.Fanouts)}
	it.stack = append(it.stack, iterFrame[K, V]{node: c.root})
	return it
}

// Next advances the iterator and reports whether an entry was found. Key
// and Val return that entry's contents once Next has returned true.
func (it *Iterator[K, V]) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]

		switch n := top.node.(type) {
		case *leaf[K, V]:
			for top.next < len(n.entries) {
				i := top.next
				top.next++
				if !n.occ.Test(uint(i)) {
					continue
				}
				if !top.path.matches(n.entries[i].hash) {
					continue
				}
				it.key = n.entries[i].key
				it.val = n.entries[i].val
				return true
			}
			it.stack = it.stack[:len(it.stack)-1]
		case *inode[K, V]:
			if top.next >= len(n.children) {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}
			idx := top.next
			fanout := len(n.children)
			childPath := top.path.descend(it.depth, top.depth, fanout, idx)
			next := n.children[idx]
			top.next++
			it.stack = append(it.stack, iterFrame[K, V]{node: next, path: childPath, depth: top.depth + 1})
		default:
			assertf(1, false, "Iterator.Next: unknown node type %T", n)
			return false
		}
	}
	it.done = true
	return false
}

// Key returns the current entry's key. Valid only after Next returns
// true.
func (it *Iterator[K, V]) Key() K { return it.key }

// Val returns the current entry's value. Valid only after Next returns
// true.
func (it *Iterator[K, V]) Val() V { return it.val }

// Done reports whether the iterator has been exhausted.
func (it *Iterator[K, V]) Done() bool { return it.done }
