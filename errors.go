package hashtrie

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers should compare with errors.Is, since every
// returned error wraps one of these.
var (
	// ErrMissingKey is returned by an indexed lookup on a key that is not
	// present in the container.
	ErrMissingKey = errors.New("hashtrie: missing key")

	// ErrImmutableMutation is returned by Insert/Delete (or any mutation)
	// attempted on an immutable container. Call Branch or GetMutableVersion
	// first.
	ErrImmutableMutation = errors.New("hashtrie: mutation of immutable container")

	// ErrMisuseCopy is returned by Insert, Delete and Get when called on a
	// Container value (not *Container) that was copied by value, whether
	// or not it was mutable at the time. Two mutable Containers
	// sharing the same tree would diverge silently, since each has its own
	// population counter; branch the container instead of copying it.
	ErrMisuseCopy = errors.New("hashtrie: mutable container copied instead of branched")
)

// missingKeyError reports a failed indexed lookup.
func missingKeyError(key any) error {
	return fmt.Errorf("%w: %v", ErrMissingKey, key)
}

// immutableMutationError reports a mutation attempt on a frozen container.
func immutableMutationError(op string) error {
	return fmt.Errorf("%w: %s", ErrImmutableMutation, op)
}
