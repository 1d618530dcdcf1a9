package zbdd

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dalzilio-faulttree/faulttree/bdd"
)

func setsEqual(t *testing.T, got []CutSet, want [][]int) {
	t.Helper()
	norm := func(cs []CutSet) [][]int {
		out := make([][]int, len(cs))
		for i, c := range cs {
			cp := append([]int(nil), c...)
			sort.Ints(cp)
			out[i] = cp
		}
		return out
	}
	if diff := cmp.Diff(want, norm(got), cmpopts.SortSlices(func(a, b []int) bool {
		return sprint(a) < sprint(b)
	})); diff != "" {
		t.Fatalf("cut sets mismatch (-want +got):\n%s", diff)
	}
}

func sprint(xs []int) string {
	out := ""
	for _, x := range xs {
		out += string(rune('a' + x))
	}
	return out
}

func TestFromBDDAndMinimizeSingleAndGate(t *testing.T) {
	b := bdd.New(nil)
	x := b.Var(0)
	y := b.Var(1)
	and := b.And(x, y)

	z := FromBDD(b, and)
	m := z.MinimizeBySubsumption()
	got, discarded := m.CutSets(0, 0, nil)
	if discarded != 0 {
		t.Fatalf("unexpected discards: %d", discarded)
	}
	setsEqual(t, got, [][]int{{0, 1}})
}

func TestMinimizeRemovesSupersets(t *testing.T) {
	b := bdd.New(nil)
	a := b.Var(0)
	c := b.Var(1)
	// OR(a, AND(a,c)) — AND(a,c) is a non-minimal superset of {a}.
	f := b.Or(a, b.And(a, c))

	z := FromBDD(b, f)
	m := z.MinimizeBySubsumption()
	got, _ := m.CutSets(0, 0, nil)
	setsEqual(t, got, [][]int{{0}})
}

func TestCutSetsAppliesOrderLimit(t *testing.T) {
	b := bdd.New(nil)
	a := b.Var(0)
	c := b.Var(1)
	e := b.Var(2)
	// OR(a, AND(c,e)) has cut sets {a} (order 1) and {c,e} (order 2).
	f := b.Or(a, b.And(c, e))

	z := FromBDD(b, f)
	m := z.MinimizeBySubsumption()
	got, _ := m.CutSets(1, 0, nil)
	setsEqual(t, got, [][]int{{0}})
}
