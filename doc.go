// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package hashtrie provides a persistent, versioned associative
// container: a mapping from comparable keys to arbitrary values
// supporting O(1) amortized insert/delete while a version is unshared,
// O(1) amortized branching into an independent mutable snapshot, and
// Θ(n^(1/7)) worst-case insert/delete immediately after a branch.
//
// A Container is a hash trie with a leaf level of small open-addressed
// hash tables and up to six interior levels of fixed-fanout nodes.
// Branching freezes a tree in place and shares it between versions;
// later mutation of either version clones only the nodes it actually
// touches, following a mutable-until-shared discipline rather than a
// generation counter or a lock.
package hashtrie
