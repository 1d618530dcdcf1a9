package bdd

import "testing"

func TestMakeNodeReducesEqualChildren(t *testing.T) {
	b := New(nil)
	v := b.makeNode(0, b.True(), b.False())
	same := b.makeNode(1, v, v)
	if same != v {
		t.Fatalf("expected redundant-node rule to return the child unchanged, got %+v want %+v", same, v)
	}
}

func TestMakeNodeCanonicalizesComplementedHigh(t *testing.T) {
	b := New(nil)
	v := b.makeNode(0, b.True(), b.False())
	nv := b.Not(v)
	n := b.makeNode(1, nv, b.True())
	if b.nodes[n.ID].high == 0 {
		t.Fatal("expected a real high child")
	}
	// iteNode has no field for a complemented high edge: makeNode must
	// have pushed the sign down into the result and the low child
	// instead, which is the invariant under test.
}

func TestAndOrDeMorgan(t *testing.T) {
	b := New(nil)
	x := b.makeNode(0, b.True(), b.False())
	y := b.makeNode(1, b.True(), b.False())

	and := b.And(x, y)
	demorgan := b.Not(b.Or(b.Not(x), b.Not(y)))
	if and != demorgan {
		t.Fatalf("AND(x,y) != NOT(OR(NOT x,NOT y)): %+v vs %+v", and, demorgan)
	}
}

func TestApplyIdempotenceAndComplementShortcuts(t *testing.T) {
	b := New(nil)
	x := b.makeNode(0, b.True(), b.False())

	if got := b.And(x, x); got != x {
		t.Fatalf("AND(x,x) = %+v, want x", got)
	}
	if got := b.Or(x, x); got != x {
		t.Fatalf("OR(x,x) = %+v, want x", got)
	}
	if got := b.And(x, b.Not(x)); got != b.False() {
		t.Fatalf("AND(x,!x) = %+v, want False", got)
	}
	if got := b.Or(x, b.Not(x)); got != b.True() {
		t.Fatalf("OR(x,!x) = %+v, want True", got)
	}
}

func TestReclaimFreesUnreferencedNodes(t *testing.T) {
	b := New(nil)
	x := b.makeNode(0, b.True(), b.False())
	y := b.makeNode(1, b.True(), b.False())
	transient := b.And(x, y)
	_ = transient // nothing AddRef'd it

	before := b.NodeCount()
	reclaimed := b.Reclaim()
	if reclaimed == 0 {
		t.Fatal("expected Reclaim to free the unreferenced AND node")
	}
	if after := b.NodeCount(); after >= before {
		t.Fatalf("NodeCount did not shrink: before=%d after=%d", before, after)
	}
}

func TestReclaimRespectsAddRef(t *testing.T) {
	b := New(nil)
	x := b.makeNode(0, b.True(), b.False())
	b.AddRef(x)

	b.Reclaim()
	if b.NodeCount() == 0 {
		t.Fatal("AddRef'd node must survive Reclaim")
	}
}

func TestGCSuppressionSkipsReclaim(t *testing.T) {
	b := New(nil)
	x := b.makeNode(0, b.True(), b.False())
	y := b.makeNode(1, b.True(), b.False())
	_ = b.And(x, y)

	b.SetGCEnabled(false)
	if n := b.Reclaim(); n != 0 {
		t.Fatalf("Reclaim should be a no-op while GC is suppressed, reclaimed %d", n)
	}
}
