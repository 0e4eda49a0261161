package hashtrie

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hasher supplies a stable 64-bit hash and an equality test for a key
// type K, per §6: "K must have a 64-bit hash function and equality."
//
// The hash must be stable across the lifetime of every key ever inserted:
// setdiff's cost contract (§4.8) and the path-descriptor machinery (§4.3)
// both assume that two containers that once shared structure still agree
// on where a given key's hash bits place it.
type Hasher[K any] interface {
	Hash(k K) uint64
	Equal(a, b K) bool
}

// stringHasher hashes strings with xxhash, a seedless, stable,
// non-cryptographic hash — required here because a per-process-seeded
// hash (as stdlib hash/maphash deliberately is) would make setdiff's
// structure-sharing assumptions meaningless across two containers that
// happen to run in different processes or even just different init
// orders within the same one.
type stringHasher struct{}

func (stringHasher) Hash(k string) uint64    { return xxhash.Sum64String(k) }
func (stringHasher) Equal(a, b string) bool  { return a == b }

// bytesHasher is the []byte analogue of stringHasher.
type bytesHasher struct{}

func (bytesHasher) Hash(k []byte) uint64   { return xxhash.Sum64(k) }
func (bytesHasher) Equal(a, b []byte) bool { return string(a) == string(b) }

// comparableHasher hashes any comparable type by hashing its %#v
// representation. It is the fallback used by New for key types other than
// string/[]byte; callers with a hot path on such keys should supply a
// purpose-built Hasher via NewWithHasher instead.
type comparableHasher[K comparable] struct{}

func (comparableHasher[K]) Hash(k K) uint64 {
	return xxhash.Sum64(appendAny(nil, k))
}

func (comparableHasher[K]) Equal(a, b K) bool { return a == b }

// appendAny renders k into a stable byte representation for hashing.
// Using fmt's %#v keeps this generic without reflection-heavy encoding;
// it is only the fallback path for key types without a dedicated Hasher.
func appendAny(buf []byte, k any) []byte {
	return fmt.Appendf(buf, "%#v", k)
}
