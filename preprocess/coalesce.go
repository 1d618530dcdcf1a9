package preprocess

import "github.com/dalzilio-faulttree/faulttree/graph"

// CoalesceGates flattens an And-of-And or Or-of-Or into a single gate
// (associativity), but only when the inner gate has exactly one parent —
// flattening a shared gate would duplicate its subtree's effect on every
// other parent that references it. A complemented reference to a child
// of the same connective is left alone: flattening across a sign would
// require a De Morgan rewrite, which Normalize already resolved earlier
// in the pipeline for Nand/Nor, so a remaining negative reference here is
// genuinely a different function.
func CoalesceGates(g *graph.Graph) error {
	refcount := gateRefcounts(g)
	for _, gt := range g.Gates() {
		if gt.State() != graph.StateNormal {
			continue
		}
		if gt.Type() != graph.And && gt.Type() != graph.Or {
			continue
		}
		for coalesceOnce(g, gt, refcount) {
		}
	}
	return nil
}

func coalesceOnce(g *graph.Graph, gt *graph.IGate, refcount map[int]int) bool {
	for _, a := range gt.Args() {
		if a < 0 {
			continue
		}
		child, ok := g.Gate(a)
		if !ok || child.Type() != gt.Type() || child.State() != graph.StateNormal {
			continue
		}
		if refcount[child.Index()] != 1 {
			continue
		}
		newArgs := make([]int, 0, len(gt.Args())+len(child.Args())-1)
		for _, x := range gt.Args() {
			if x != a {
				newArgs = append(newArgs, x)
			}
		}
		newArgs = append(newArgs, child.Args()...)
		typ, vote := gt.Type(), gt.VoteNumber()
		gt.Retype(typ, vote, newArgs)
		return true
	}
	return false
}

// gateRefcounts counts, for every gate index, how many (gate, argument)
// slots across the whole graph reference it.
func gateRefcounts(g *graph.Graph) map[int]int {
	counts := map[int]int{}
	for _, gt := range g.Gates() {
		for _, a := range gt.Args() {
			idx := abs(a)
			if _, ok := g.Gate(idx); ok {
				counts[idx]++
			}
		}
	}
	return counts
}
