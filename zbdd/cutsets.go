package zbdd

import "sort"

// CutSet is a minimal cut set: the variable levels whose simultaneous
// occurrence is sufficient (and, once minimized, necessary) for the top
// event. Levels are the same indices bdd.BDD uses, so callers hold a
// separate level-to-event lookup (built once from the graph's variable
// order) to render these as basic-event names.
type CutSet []int

// decodeAll enumerates every set in the family, unbounded.
func (z *ZBDD) decodeAll() []CutSet {
	return z.walkBounded(z.root, 0)
}

// CutSets enumerates the family's members iteratively, discarding any
// set whose cardinality exceeds limitOrder and any whose rare-event
// probability estimate (the product of its members' probabilities,
// under prob) falls below cutOff. prob may be nil, in which case no
// probability cutoff is applied. Truncation is silent, never an error.
// The returned count covers only sets dropped by cutOff; sets pruned by
// limitOrder are not counted.
func (z *ZBDD) CutSets(limitOrder int, cutOff float64, prob func(level int) float64) ([]CutSet, int) {
	all := z.walkBounded(z.root, limitOrder)
	if prob == nil || cutOff <= 0 {
		return all, 0
	}
	kept := make([]CutSet, 0, len(all))
	discarded := 0
	for _, s := range all {
		p := 1.0
		for _, v := range s {
			p *= prob(v)
		}
		if p < cutOff {
			discarded++
			continue
		}
		kept = append(kept, s)
	}
	return kept, discarded
}

// walkBounded enumerates every set reachable from root whose cardinality
// never exceeds limit (0 meaning unbounded), using an explicit stack of
// (node, accumulated-set) frames instead of recursion.
func (z *ZBDD) walkBounded(root int, limit int) []CutSet {
	var out []CutSet
	type pending struct {
		id  int
		acc CutSet
	}
	stack := []pending{{root, nil}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch top.id {
		case emptyFamily:
			// contributes nothing
		case unitFamily:
			set := append(CutSet(nil), top.acc...)
			sort.Ints(set)
			out = append(out, set)
		default:
			n := z.node(top.id)
			stack = append(stack, pending{n.else_, top.acc})
			if limit <= 0 || len(top.acc)+1 <= limit {
				stack = append(stack, pending{n.then_, append(append(CutSet(nil), top.acc...), n.v)})
			}
		}
	}
	return out
}
