package preprocess

import "github.com/dalzilio-faulttree/faulttree/graph"

// Normalize rewrites every gate so that only And, Or, and Null
// connectives remain: Not(x) and Nand/Nor(x...) become Null/And/Or
// wrapped in a negated reference (the graph already carries polarity on
// every signed argument, so an explicit "not" connective is redundant
// once the sign can do the job), Xor(a,b) becomes Or(And(a,-b),And(-a,b)),
// and AtLeast(k,args) is expanded via recursive Shannon cofactoring, one
// literal at a time, into nested And/Or.
func Normalize(g *graph.Graph) error {
	for _, gt := range g.Gates() {
		if err := normalizeGate(g, gt); err != nil {
			return err
		}
	}
	return nil
}

func normalizeGate(g *graph.Graph, gt *graph.IGate) error {
	if gt.State() != graph.StateNormal {
		return nil
	}
	switch gt.Type() {
	case graph.Not:
		args := gt.Args()
		if len(args) != 1 {
			return nil
		}
		gt.Retype(graph.Null, 0, []int{-args[0]})
	case graph.Nand:
		clone := g.NewGate(graph.And, 0, "")
		for _, a := range gt.Args() {
			if err := g.AddArg(clone, a); err != nil {
				return err
			}
		}
		gt.Retype(graph.Null, 0, []int{-clone.Index()})
	case graph.Nor:
		clone := g.NewGate(graph.Or, 0, "")
		for _, a := range gt.Args() {
			if err := g.AddArg(clone, a); err != nil {
				return err
			}
		}
		gt.Retype(graph.Null, 0, []int{-clone.Index()})
	case graph.Xor:
		args := gt.Args()
		if len(args) != 2 {
			return nil
		}
		x, y := args[0], args[1]
		and1 := g.NewGate(graph.And, 0, "")
		and2 := g.NewGate(graph.And, 0, "")
		if err := g.AddArg(and1, x); err != nil {
			return err
		}
		if err := g.AddArg(and1, -y); err != nil {
			return err
		}
		if err := g.AddArg(and2, -x); err != nil {
			return err
		}
		if err := g.AddArg(and2, y); err != nil {
			return err
		}
		gt.Retype(graph.Or, 0, []int{and1.Index(), and2.Index()})
	case graph.AtLeast:
		return expandAtLeast(g, gt)
	}
	return nil
}

// expandAtLeast rewrites gt in place into the nested And/Or tree defined
// by the Shannon cofactor recursion ATLEAST(k,{x}∪Y) =
// OR(AND(x,ATLEAST(k-1,Y)), ATLEAST(k,Y)), bottoming out at the usual
// k==1 (Or), k==n (And), and out-of-range (constant) degeneracies. This
// is the ordinary single-occurrence cofactor, distinct from the
// duplicate-argument case in graph.Graph.rewriteAtLeastDuplicate: gt's
// args here are never repeated, so committing x satisfies exactly one
// vote, not two.
func expandAtLeast(g *graph.Graph, gt *graph.IGate) error {
	typ, vote, args, state, err := shannonExpand(g, gt.Args(), gt.VoteNumber())
	if err != nil {
		return err
	}
	if state != graph.StateNormal {
		gt.Collapse(state)
		return nil
	}
	gt.Retype(typ, vote, args)
	return nil
}

// shannonExpand returns the connective, vote number, and argument list
// that a brand-new gate would need to represent ATLEAST(k,args), or a
// constant state when k falls outside [1,len(args)].
func shannonExpand(g *graph.Graph, args []int, k int) (graph.Connective, int, []int, graph.State, error) {
	n := len(args)
	switch {
	case k <= 0:
		return graph.Or, 0, nil, graph.StateUnity, nil
	case k > n:
		return graph.And, 0, nil, graph.StateNull, nil
	case k == n:
		return graph.And, 0, args, graph.StateNormal, nil
	case k == 1:
		return graph.Or, 0, args, graph.StateNormal, nil
	}
	x := args[0]
	y := args[1:]

	andBranch := g.NewGate(graph.And, 0, "")
	if err := g.AddArg(andBranch, x); err != nil {
		return 0, 0, nil, 0, err
	}
	inner := g.NewGate(graph.AtLeast, k-1, "")
	for _, a := range y {
		if err := g.AddArg(inner, a); err != nil {
			return 0, 0, nil, 0, err
		}
	}
	if err := normalizeGate(g, inner); err != nil {
		return 0, 0, nil, 0, err
	}
	if err := g.AddArg(andBranch, inner.Index()); err != nil {
		return 0, 0, nil, 0, err
	}

	rest := g.NewGate(graph.AtLeast, k, "")
	for _, a := range y {
		if err := g.AddArg(rest, a); err != nil {
			return 0, 0, nil, 0, err
		}
	}
	if err := normalizeGate(g, rest); err != nil {
		return 0, 0, nil, 0, err
	}

	return graph.Or, 0, []int{andBranch.Index(), rest.Index()}, graph.StateNormal, nil
}
