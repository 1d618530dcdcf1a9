package graph

// NewGate allocates a fresh gate with its own run-scoped index. Exposed so
// the preprocessor can synthesize gates while rewriting connectives
// (De Morgan unwrapping, K-of-N expansion, gate coalescing) without
// reaching into the graph's internals.
func (g *Graph) NewGate(typ Connective, vote int, label string) *IGate {
	return g.newGate(typ, vote, label)
}

// Collapse forces a gate to a Boolean constant, discarding its
// arguments. Exposed for preprocessing passes that determine a gate's
// value is constant from graph-wide analysis (e.g. K-of-N degeneration).
func (g *IGate) Collapse(s State) { g.collapse(s) }

// Retype replaces a gate's connective and argument list in place,
// preserving its index so existing references stay valid. It recomputes
// the variable/gate argument bookkeeping sets from the new argument list
// and leaves the gate's state as Normal.
func (g *IGate) Retype(typ Connective, vote int, args []int) {
	g.typ = typ
	g.voteNumber = vote
	g.state = StateNormal
	g.args = args
	g.varArgs = map[int]struct{}{}
	g.gateArgs = map[int]struct{}{}
	for _, a := range args {
		if _, isVar := g.g.vars[abs(a)]; isVar {
			g.varArgs[a] = struct{}{}
		} else {
			g.gateArgs[a] = struct{}{}
		}
	}
}
