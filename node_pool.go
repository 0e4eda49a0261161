package hashtrie

import (
	"sync"
	"sync/atomic"
)

// inodePool is a type-safe wrapper around sync.Pool specialized for
// *inode[K,V] instances, adapted from the teacher's own pool[V] (an INode
// replaced by its growLazy successor is exactly the teacher's "node
// replaced by a clone, never reachable again" case; leaves are not
// pooled). It is an opportunistic memory-reuse
// optimization, not a correctness requirement: a nil *inodePool behaves
// identically to always allocating fresh, just with more garbage.
type inodePool[K comparable, V any] struct {
	sync.Pool

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

func newINodePool[K comparable, V any]() *inodePool[K, V] {
	p := &inodePool[K, V]{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return new(inode[K, V])
	}
	return p
}

// get retrieves an *inode[K,V] from the pool, or allocates one if needed.
func (p *inodePool[K, V]) get() *inode[K, V] {
	if p == nil {
		return new(inode[K, V])
	}
	p.currentLive.Add(1)
	return p.Pool.Get().(*inode[K, V])
}

// put returns n to the pool once it is known unreachable from every live
// container (i.e. it was replaced by growLazy and never re-shared). The
// node's child slice is released so the pool does not pin down whatever
// subtree it used to root.
func (p *inodePool[K, V]) put(n *inode[K, V]) {
	if p == nil {
		return
	}
	p.currentLive.Add(-1)
	n.children = nil
	n.mutable = false
	p.Pool.Put(n)
}

// stats reports the number of currently live (checked-out) nodes and the
// total ever allocated. It is unexported, and nothing calls it.
func (p *inodePool[K, V]) stats() (live, total int64) {
	if p == nil {
		return 0, 0
	}
	return p.currentLive.Load(), p.totalAllocated.Load()
}
