// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package hashtrie

// Cloner is an interface that enables deep cloning of values of type V.
// If a value implements Cloner[V], a leaf's CoW clone deep-copies its
// values with Clone instead of sharing them by assignment, the same way
// a value's own identity is otherwise shared across versions.
type Cloner[V any] interface {
	Clone() V
}

// cloneVal returns a deep copy of v if V implements Cloner[V], or v
// itself otherwise.
func cloneVal[V any](v V) V {
	if c, ok := any(v).(Cloner[V]); ok {
		return c.Clone()
	}
	return v
}
