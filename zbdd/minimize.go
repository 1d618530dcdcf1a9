package zbdd

import "sort"

// MinimizeBySubsumption rebuilds the ZBDD keeping only its minimal
// members: a set S survives iff no other set in the family is a proper
// subset of S. The result satisfies the antichain property (no member
// is a subset of another), which is what turns "some combination of
// failures causes the top event" into "a minimal cut set".
//
// Sets are decoded, filtered with a straightforward O(n^2) pairwise
// subset check, and re-encoded rather than filtered in place on the
// ZBDD structure (Minato's in-place NonSuperset recursion would avoid
// the decode/re-encode round trip, but at cut-set counts this pass
// actually sees, decode-filter-rebuild is far easier to get right and
// costs nothing observable).
func (z *ZBDD) MinimizeBySubsumption() *ZBDD {
	sets := z.decodeAll()
	minimal := make([]CutSet, 0, len(sets))
	for i, s := range sets {
		subsumed := false
		for j, t := range sets {
			if i == j || len(t) >= len(s) {
				continue
			}
			if isSubset(t, s) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			minimal = append(minimal, s)
		}
	}
	return fromSets(minimal)
}

func isSubset(a, b CutSet) bool {
	set := make(map[int]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	for _, v := range a {
		if !set[v] {
			return false
		}
	}
	return true
}

// fromSets rebuilds a ZBDD whose family is exactly the given sets. Each
// set is encoded in ascending variable order, matching the root-holds-
// the-smallest-index convention the rest of this package (and bdd.BDD's
// level ordering) uses.
func fromSets(sets []CutSet) *ZBDD {
	z := newArena()
	ids := make([]int, len(sets))
	for i, s := range sets {
		sorted := append(CutSet(nil), s...)
		sort.Ints(sorted)
		ids[i] = z.encodeOne(sorted)
	}
	z.root = z.union(ids)
	return z
}

func (z *ZBDD) encodeOne(ascending CutSet) int {
	id := unitFamily
	for i := len(ascending) - 1; i >= 0; i-- {
		id = z.makeNode(ascending[i], id, emptyFamily)
	}
	return id
}

// union folds the family union of several encoded sets. It is a small
// fixed-point helper rather than a general ZBDD union operator, since
// this package only ever needs to union a handful of singleton-set
// encodings while rebuilding after minimization.
func (z *ZBDD) union(ids []int) int {
	acc := emptyFamily
	for _, id := range ids {
		acc = z.unionPair(acc, id)
	}
	return acc
}

func (z *ZBDD) unionPair(a, b int) int {
	if a == emptyFamily {
		return b
	}
	if b == emptyFamily {
		return a
	}
	if a == unitFamily && b == unitFamily {
		return unitFamily
	}
	if a == unitFamily {
		na := z.node(b)
		return z.makeNode(na.v, na.then_, z.unionPair(unitFamily, na.else_))
	}
	if b == unitFamily {
		return z.unionPair(b, a)
	}
	na, nb := z.node(a), z.node(b)
	switch {
	case na.v == nb.v:
		return z.makeNode(na.v, z.unionPair(na.then_, nb.then_), z.unionPair(na.else_, nb.else_))
	case na.v < nb.v:
		return z.makeNode(na.v, na.then_, z.unionPair(na.else_, b))
	default:
		return z.makeNode(nb.v, nb.then_, z.unionPair(a, nb.else_))
	}
}
