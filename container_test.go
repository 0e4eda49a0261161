package hashtrie

import (
	"strconv"
	"testing"
)

func TestInsertGetDelete(t *testing.T) {
	c := New[string, int]()

	for i := 0; i < 100; i++ {
		key := strconv.Itoa(i)
		inserted, replaced, err := c.Insert(key, i)
		if err != nil {
			t.Fatalf("Insert(%s) error: %v", key, err)
		}
		if !inserted || replaced {
			t.Fatalf("Insert(%s) = %v, %v, want true, false", key, inserted, replaced)
		}
	}

	if c.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", c.Len())
	}

	for i := 0; i < 100; i++ {
		key := strconv.Itoa(i)
		v, err := c.Get(key)
		if err != nil || v != i {
			t.Fatalf("Get(%s) = %v, %v, want %d, nil", key, v, err, i)
		}
	}

	removed, err := c.Delete("42")
	if err != nil || !removed {
		t.Fatalf("Delete(42) = %v, %v, want true, nil", removed, err)
	}
	if c.ContainsKey("42") {
		t.Fatalf("ContainsKey(42) = true after delete")
	}
	if c.Len() != 99 {
		t.Fatalf("Len() after delete = %d, want 99", c.Len())
	}
}

func TestOverwriteIsSizeNeutral(t *testing.T) {
	c := New[string, int]()
	c.Insert("k", 1)
	before := c.Len()
	inserted, replaced, err := c.Insert("k", 2)
	if err != nil || inserted || !replaced {
		t.Fatalf("overwrite Insert = %v, %v, %v, want false, true, nil", inserted, replaced, err)
	}
	if c.Len() != before {
		t.Fatalf("Len() changed on overwrite: %d -> %d", before, c.Len())
	}
	v, _ := c.Get("k")
	if v != 2 {
		t.Fatalf("Get(k) = %d, want 2", v)
	}
}

func TestBranchIsolation(t *testing.T) {
	a := New[string, int]()
	for i := 0; i < 2000; i++ {
		a.Insert(strconv.Itoa(i), i)
	}

	if a.IsMutable() == false {
		t.Fatalf("fresh container reports immutable")
	}

	b := a.Branch()
	if a.IsMutable() {
		t.Fatalf("a still mutable after Branch")
	}
	if !b.IsMutable() {
		t.Fatalf("b not mutable after Branch")
	}

	b.Insert("new-key", 999)
	if a.ContainsKey("new-key") {
		t.Fatalf("mutation of branch b leaked into frozen a")
	}
	if !b.ContainsKey("new-key") {
		t.Fatalf("b missing its own new key")
	}

	if _, _, err := a.Insert("forbidden", 1); err == nil {
		t.Fatalf("Insert on frozen a did not return an error")
	}

	for i := 0; i < 2000; i++ {
		v, err := b.Get(strconv.Itoa(i))
		if err != nil || v != i {
			t.Fatalf("b.Get(%d) = %v, %v, want %d, nil", i, v, err, i)
		}
	}
}

func TestDoubleBranchLeavesOriginalFrozen(t *testing.T) {
	a := New[string, int]()
	a.Insert("x", 1)

	b1, b2 := a.DoubleBranch()
	if a.IsMutable() {
		t.Fatalf("a still mutable after DoubleBranch")
	}

	b1.Insert("y", 2)
	b2.Insert("z", 3)

	if b1.ContainsKey("z") || b2.ContainsKey("y") {
		t.Fatalf("branches leaked mutations into each other")
	}
	if !b1.ContainsKey("x") || !b2.ContainsKey("x") {
		t.Fatalf("branches missing shared ancestor entry")
	}
}

func TestMisuseCopyDetected(t *testing.T) {
	a := New[string, int]()
	a.Insert("x", 1)

	cp := *a
	if err := cp.checkUsable(); err == nil {
		t.Fatalf("checkUsable on value-copied Container did not error")
	}
}

func TestLargeGrowthWithBranchPoints(t *testing.T) {
	c := New[int, int]()
	branchAt := map[int]bool{7: true, 40: true, 120: true, 1000: true}
	var branches []*Container[int, int]

	n := 1 << 16
	for i := 0; i < n; i++ {
		c.Insert(i, i*2)
		if branchAt[i] || i%10000 == 0 {
			branches = append(branches, c.Branch())
			c = c.GetMutableVersion()
		}
	}

	for _, br := range branches {
		for i := 0; i < 10; i++ {
			if br.ContainsKey(i) {
				v, err := br.Get(i)
				if err != nil || v != i*2 {
					t.Fatalf("branch Get(%d) = %v, %v, want %d, nil", i, v, err, i*2)
				}
			}
		}
	}
}
