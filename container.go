package hashtrie

// Container is a persistent, versioned associative container (§3.5): a
// mapping from K to V supporting O(1) amortized mutation while unshared,
// O(1) amortized branching into a new mutable snapshot, and Θ(n^(1/7))
// worst-case insert/delete on a freshly branched version.
//
// The zero value is not usable; construct with New or NewWithHasher.
// A *Container must never be copied by value while mutable — see
// ErrMisuseCopy.
type Container[K comparable, V any] struct {
	root   child[K, V]
	n      uint64
	config Configuration
	hasher Hasher[K]
	pool   *inodePool[K, V]

	// origin points back at the Container that owns this struct's
	// storage. It is set once, at construction, to the container's own
	// address. If the Container struct is later copied by value (instead
	// of branched), the copy's origin still points at the original,
	// letting mutation methods detect and reject the misuse (§7).
	origin *Container[K, V]
}

// New returns a new, empty, mutable Container using a best-effort default
// Hasher for K (string keys get a dedicated xxhash-based Hasher; any
// other comparable type falls back to hashing its formatted value —
// see NewWithHasher for a faster, purpose-built alternative).
func New[K comparable, V any]() *Container[K, V] {
	return NewWithHasher[K, V](defaultHasher[K]())
}

// NewWithHasher returns a new, empty, mutable Container using the given
// Hasher.
func NewWithHasher[K comparable, V any](h Hasher[K]) *Container[K, V] {
	c := &Container[K, V]{
		root:   newLeaf[K, V](1),
		n:      0,
		config: configFor(0),
		hasher: h,
		pool:   newINodePool[K, V](),
	}
	c.origin = c
	return c
}

// defaultHasher picks a Hasher[K] based on K's static type.
func defaultHasher[K comparable]() Hasher[K] {
	var zero K
	switch any(zero).(type) {
	case string:
		return any(stringHasher{}).(Hasher[K])
	case []byte:
		return any(bytesHasher{}).(Hasher[K])
	default:
		return comparableHasher[K]{}
	}
}

// checkUsable returns ErrMisuseCopy if c's struct storage was copied by
// value instead of branched (§7).
func (c *Container[K, V]) checkUsable() error {
	if c.origin != c {
		return ErrMisuseCopy
	}
	return nil
}

// Len returns the number of entries in the container.
func (c *Container[K, V]) Len() int {
	return int(c.n)
}

// IsMutable reports whether c's root is currently mutable (§4.6).
func (c *Container[K, V]) IsMutable() bool {
	return c.root.isMutable()
}

func (c *Container[K, V]) hashOf(k K) uint64 {
	return c.hasher.Hash(k)
}
