package zbdd

import "github.com/dalzilio-faulttree/faulttree/bdd"

// FromBDD converts a bdd.BDD's function f into a ZBDD representing the
// family of sets obtained by projecting every satisfying assignment of f
// onto its positive literals: each path to the true terminal contributes
// the set of variables forced true along that path, with variables left
// free or forced false simply absent from the set. This family is not
// yet an antichain — MinimizeBySubsumption removes the non-minimal
// members to turn it into the minimal-cut-set family.
func FromBDD(b *bdd.BDD, f bdd.Function) *ZBDD {
	z := newArena()
	memo := map[bdd.Function]int{}
	z.root = convert(b, f, z, memo)
	return z
}

func convert(b *bdd.BDD, f bdd.Function, z *ZBDD, memo map[bdd.Function]int) int {
	if id, ok := memo[f]; ok {
		return id
	}
	var id int
	if b.IsTerminal(f) {
		if b.Value(f) {
			id = unitFamily
		} else {
			id = emptyFamily
		}
	} else {
		lvl, low, high := b.Children(f)
		thenFamily := convert(b, high, z, memo)
		elseFamily := convert(b, low, z, memo)
		id = z.makeNode(lvl, thenFamily, elseFamily)
	}
	memo[f] = id
	return id
}
