package hashtrie

import "testing"

func TestGrowLazyAliasesAndMarksImmutable(t *testing.T) {
	lf := newLeaf[int, int](1)
	n := newINode[int, int](4, lf)

	grown := n.growLazy(nil, 8)
	if len(grown.children) != 8 {
		t.Fatalf("growLazy(8) produced %d children, want 8", len(grown.children))
	}
	for i, c := range grown.children {
		if c != child[int, int](lf) {
			t.Fatalf("grown.children[%d] is not the aliased leaf", i)
		}
	}
	if lf.isMutable() {
		t.Fatalf("aliased leaf still mutable after growLazy")
	}
	if !grown.isMutable() {
		t.Fatalf("freshly grown inode is not mutable")
	}
}

func TestCowChildClonesImmutableChild(t *testing.T) {
	lf := newLeaf[int, int](4)
	h := comparableHasher[int]{}
	lf, _ = lf.insert(h, h.Hash(1), 1, 100)
	lf.markImmutable()

	n := newINode[int, int](2, lf)

	got := n.cowChild(0, path{})
	if got == child[int, int](lf) {
		t.Fatalf("cowChild returned the shared immutable leaf instead of a clone")
	}
	if !got.isMutable() {
		t.Fatalf("cowChild result is not mutable")
	}
	// the sibling slot still aliases the original, untouched leaf.
	if n.children[1] != child[int, int](lf) {
		t.Fatalf("cowChild mutated an unrelated sibling slot")
	}
}

func TestMarkImmutableRecStopsAtFrozenSubtree(t *testing.T) {
	inner := newINode[int, int](2, newLeaf[int, int](1))
	inner.children[0].markImmutable()
	inner.children[0].markImmutable() // idempotent

	outer := newINode[int, int](2, inner)
	outer.markImmutableRec()

	if outer.isMutable() {
		t.Fatalf("outer still mutable after markImmutableRec")
	}
	if inner.isMutable() {
		t.Fatalf("inner still mutable after markImmutableRec")
	}
}
