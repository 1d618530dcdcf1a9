package preprocess

import "github.com/dalzilio-faulttree/faulttree/graph"

// PropagateNot eliminates Null-typed alias gates introduced by Normalize
// (Not/Nand/Nor unwrapping): a Null gate is a pure single-argument
// passthrough, so any reference to one can be rewritten to reference its
// own argument directly, combining signs. This is the same "replace a
// reference with what it ultimately stands for" idea as the teacher's
// variable-substitution machinery, generalized from BDD variables to
// graph aliases.
func PropagateNot(g *graph.Graph) error {
	for _, gt := range g.Gates() {
		if gt.State() != graph.StateNormal {
			continue
		}
		args := gt.Args()
		resolved := make([]int, len(args))
		changed := false
		for i, a := range args {
			r := resolveAlias(g, a)
			resolved[i] = r
			if r != a {
				changed = true
			}
		}
		if !changed {
			continue
		}
		typ, vote := gt.Type(), gt.VoteNumber()
		gt.Retype(typ, vote, nil)
		for _, a := range resolved {
			if err := g.AddArg(gt, a); err != nil {
				return err
			}
		}
	}
	return ConstantPropagation(g)
}

// resolveAlias follows a chain of Null-typed passthrough gates to the
// literal it ultimately stands for, combining signs along the way.
func resolveAlias(g *graph.Graph, signed int) int {
	idx := abs(signed)
	gt, ok := g.Gate(idx)
	if !ok || gt.Type() != graph.Null || gt.State() != graph.StateNormal {
		return signed
	}
	args := gt.Args()
	if len(args) != 1 {
		return signed
	}
	inner := resolveAlias(g, args[0])
	if signed < 0 {
		return -inner
	}
	return inner
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
