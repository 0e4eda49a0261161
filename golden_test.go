package hashtrie

import (
	"strconv"
	"testing"

	"github.com/hashtrie/hashtrie/internal/golden"
)

// TestAgainstGoldenOracle drives a Container and a golden.Map through the
// same sequence of inserts/deletes/branches and checks they always agree,
// the same property-test shape the teacher runs its tables through
// against internal/golden.
func TestAgainstGoldenOracle(t *testing.T) {
	c := New[string, int]()
	g := golden.NewMap[string, int]()

	var cBranches []*Container[string, int]
	var gBranches []*golden.Map[string, int]

	for i := 0; i < 3000; i++ {
		key := strconv.Itoa(i % 700)
		cInserted, _, err := c.Insert(key, i)
		if err != nil {
			t.Fatalf("Insert(%s) error: %v", key, err)
		}
		gInserted := g.Insert(key, i)
		if cInserted != gInserted {
			t.Fatalf("Insert(%s) inserted = %v, golden = %v", key, cInserted, gInserted)
		}

		if i%37 == 0 {
			delKey := strconv.Itoa((i / 2) % 700)
			cRemoved, err := c.Delete(delKey)
			if err != nil {
				t.Fatalf("Delete(%s) error: %v", delKey, err)
			}
			gRemoved := g.Delete(delKey)
			if cRemoved != gRemoved {
				t.Fatalf("Delete(%s) removed = %v, golden = %v", delKey, cRemoved, gRemoved)
			}
		}

		if i%500 == 499 {
			cBranches = append(cBranches, c.Branch())
			gBranches = append(gBranches, g.Clone())
			c = c.GetMutableVersion()
		}

		if c.Len() != g.Len() {
			t.Fatalf("Len() = %d, golden Len() = %d at i=%d", c.Len(), g.Len(), i)
		}
	}

	for idx, cb := range cBranches {
		gb := gBranches[idx]
		want := gb.All()
		if cb.Len() != len(want) {
			t.Fatalf("branch %d: Len() = %d, golden = %d", idx, cb.Len(), len(want))
		}
		for k, v := range want {
			got, err := cb.Get(k)
			if err != nil || got != v {
				t.Fatalf("branch %d: Get(%s) = %v, %v, want %d, nil", idx, k, got, err, v)
			}
		}
	}
}
