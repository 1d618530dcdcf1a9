package graph

// Variable is a leaf of the indexed Boolean graph: a unique positive index
// distinct from gate indices, linked to the basic event it represents.
type Variable struct {
	index int
	event *BasicEvent
	order int // assigned by preprocess.AssignOrder; meaningless until then
}

// Index returns the variable's run-scoped positive index.
func (v *Variable) Index() int { return v.index }

// Event returns the basic event this variable represents.
func (v *Variable) Event() *BasicEvent { return v.event }

// Order returns the variable's position in the BDD variable order.
func (v *Variable) Order() int { return v.order }

// SetOrder records the variable's position in the BDD variable order.
func (v *Variable) SetOrder(o int) { v.order = o }

// IGate is an indexed, mutable gate of the Boolean graph. Its args are
// ordered, signed references into the owning Graph's index space: a
// positive entry names a Variable or IGate index directly, a negative
// entry names the same index complemented.
type IGate struct {
	g          *Graph
	index      int
	label      string // original gate ID, kept for diagnostics only
	typ        Connective
	voteNumber int
	args       []int
	state      State
	mark       bool

	varArgs  map[int]struct{} // signed indices of args that name a Variable
	gateArgs map[int]struct{} // signed indices of args that name an IGate

	isModule bool
	order    int // assigned by preprocess.AssignOrder; meaningless until then
}

// Index returns the gate's run-scoped positive index.
func (g *IGate) Index() int { return g.index }

// Type returns the gate's connective.
func (g *IGate) Type() Connective { return g.typ }

// VoteNumber returns the gate's threshold; only meaningful for AtLeast.
func (g *IGate) VoteNumber() int { return g.voteNumber }

// State returns the gate's constant-collapse state.
func (g *IGate) State() State { return g.state }

// Args returns the gate's ordered, signed arguments.
func (g *IGate) Args() []int { return g.args }

// Mark returns the gate's traversal mark.
func (g *IGate) Mark() bool { return g.mark }

// SetMark sets the gate's traversal mark. Passes that use this should
// always restore marks to false when they are done, or better, use an
// explicit visited set instead (see the preprocess package).
func (g *IGate) SetMark(v bool) { g.mark = v }

// IsModule reports whether DetectModules identified this gate as an
// independent module: its variables are disjoint from the rest of the
// graph, so it can be solved into its own BDD and treated as a single
// pseudo-variable by the rest of the analysis.
func (g *IGate) IsModule() bool { return g.isModule }

// SetModule records the DetectModules verdict for this gate.
func (g *IGate) SetModule(v bool) { g.isModule = v }

// Order returns the gate's position in the BDD variable order; only
// meaningful for gates marked as modules, which act as pseudo-variables.
func (g *IGate) Order() int { return g.order }

// SetOrder records the gate's position in the BDD variable order.
func (g *IGate) SetOrder(o int) { g.order = o }

// Label returns the gate's original fault-tree identifier, kept only for
// diagnostics; synthesized gates (K-of-N clones, CCF splits) carry a
// synthetic or empty label.
func (g *IGate) Label() string { return g.label }

// VarArgs returns the signed args of g that name a Variable.
func (g *IGate) VarArgs() map[int]struct{} { return g.varArgs }

// GateArgs returns the signed args of g that name another IGate.
func (g *IGate) GateArgs() map[int]struct{} { return g.gateArgs }

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func sign(i int) int {
	if i < 0 {
		return -1
	}
	return 1
}

// findArgSign returns the sign of the existing arg naming idx, if any.
func (g *IGate) findArgSign(idx int) (int, bool) {
	for _, a := range g.args {
		if abs(a) == idx {
			return sign(a), true
		}
	}
	return 0, false
}

// appendArg records signed as a new argument of g and classifies it into
// the variable/gate bookkeeping sets.
func (g *IGate) appendArg(signed int) {
	g.args = append(g.args, signed)
	idx := abs(signed)
	if _, isVar := g.g.vars[idx]; isVar {
		g.varArgs[signed] = struct{}{}
	} else {
		g.gateArgs[signed] = struct{}{}
	}
}

// removeArg deletes the (single) arg whose absolute index is idx.
func (g *IGate) removeArg(idx int) {
	for i, a := range g.args {
		if abs(a) == idx {
			g.args = append(g.args[:i], g.args[i+1:]...)
			delete(g.varArgs, a)
			delete(g.gateArgs, a)
			return
		}
	}
}

// collapse fixes the gate's value to a Boolean constant, discarding its
// arguments: a collapsed gate no longer depends on anything.
func (g *IGate) collapse(s State) {
	g.state = s
	g.args = nil
	g.varArgs = map[int]struct{}{}
	g.gateArgs = map[int]struct{}{}
}

// Graph is the indexed Boolean graph built from a validated fault tree.
// Gate and variable indices share one run-scoped counter so the two
// namespaces never collide, per the data model.
type Graph struct {
	nextIndex int
	gates     map[int]*IGate
	vars      map[int]*Variable
	varByID   map[string]*Variable
	gateByID  map[*Gate]*IGate
	top       *IGate
	ccfEvents map[string]*BasicEvent

	ccfAnalysis      bool
	ccfGateByID      map[string]*IGate
	ccfCommonByGroup map[string]*Variable
}

// defaultCCFBeta is the shared fraction of a CCF member's probability
// attributed to the group's common cause. Every group uses this value;
// groups carry no beta-factor parameter of their own.
const defaultCCFBeta = 0.1

// NewGraph builds an indexed Boolean graph from a validated fault tree.
// When ccfAnalysis is false, basic events belonging to CCF groups are
// treated as ordinary independent basic events (the groups are still
// gathered for reporting, but never expanded into gates).
func NewGraph(ft FaultTree, ccfAnalysis bool) (*Graph, error) {
	g := &Graph{
		nextIndex:        2, // 1 and -1 are reserved for BDD terminals
		gates:            map[int]*IGate{},
		vars:             map[int]*Variable{},
		varByID:          map[string]*Variable{},
		gateByID:         map[*Gate]*IGate{},
		ccfEvents:        map[string]*BasicEvent{},
		ccfAnalysis:      ccfAnalysis,
		ccfGateByID:      map[string]*IGate{},
		ccfCommonByGroup: map[string]*Variable{},
	}
	for id, be := range ft.BasicEvents() {
		if be.HasCCF() {
			g.ccfEvents[id] = be
		}
	}
	top, err := g.convertGate(ft.TopEvent())
	if err != nil {
		return nil, err
	}
	g.top = top
	return g, nil
}

// Top returns the graph's root gate.
func (g *Graph) Top() *IGate { return g.top }

// Gate looks up a gate by its run-scoped index.
func (g *Graph) Gate(index int) (*IGate, bool) {
	gt, ok := g.gates[index]
	return gt, ok
}

// Variable looks up a variable by its run-scoped index.
func (g *Graph) Variable(index int) (*Variable, bool) {
	v, ok := g.vars[index]
	return v, ok
}

// Gates returns every gate currently registered in the graph.
func (g *Graph) Gates() map[int]*IGate { return g.gates }

// Variables returns every variable currently registered in the graph.
func (g *Graph) Variables() map[int]*Variable { return g.vars }

func (g *Graph) newGate(typ Connective, vote int, label string) *IGate {
	idx := g.nextIndex
	g.nextIndex++
	gt := &IGate{
		g:          g,
		index:      idx,
		label:      label,
		typ:        typ,
		voteNumber: vote,
		varArgs:    map[int]struct{}{},
		gateArgs:   map[int]struct{}{},
	}
	g.gates[idx] = gt
	return gt
}

func (g *Graph) variableFor(be *BasicEvent) *Variable {
	if v, ok := g.varByID[be.ID]; ok {
		return v
	}
	idx := g.nextIndex
	g.nextIndex++
	v := &Variable{index: idx, event: be}
	g.vars[idx] = v
	g.varByID[be.ID] = v
	return v
}

// convertGate recursively lowers a Gate (and its subtree) into IGates,
// memoizing on Gate identity so shared subgates become shared IGates.
func (g *Graph) convertGate(gt *Gate) (*IGate, error) {
	if existing, ok := g.gateByID[gt]; ok {
		return existing, nil
	}
	ig := g.newGate(gt.Connective, gt.VoteNumber, gt.ID)
	g.gateByID[gt] = ig
	for _, a := range gt.Args {
		if err := g.convertArg(ig, a); err != nil {
			return nil, err
		}
	}
	if ig.typ == AtLeast && ig.state == StateNormal && ig.voteNumber > len(ig.args) {
		return nil, invalidGraph("atleast vote number exceeds argument count")
	}
	return ig, nil
}

func (g *Graph) convertArg(parent *IGate, a Arg) error {
	switch a.Kind {
	case KindHouseEvent:
		value := a.HouseEvent.State
		if a.Complement {
			value = !value
		}
		return g.ProcessConstantArg(parent, value)
	case KindBasicEvent:
		signed := g.resolveBasicEventArg(a.BasicEvent)
		if a.Complement {
			signed = -signed
		}
		return g.AddArg(parent, signed)
	case KindGate:
		child, err := g.convertGate(a.Gate)
		if err != nil {
			return err
		}
		signed := child.index
		if a.Complement {
			signed = -signed
		}
		return g.AddArg(parent, signed)
	default:
		return invalidGraph("unknown arg kind")
	}
}

// AddArg implements the add-arg contract: a brand-new argument is simply
// appended; a duplicate is resolved according to the connective-specific
// rules below, which may collapse the gate to a constant or rewrite a
// K-of-N gate's structure in place.
func (g *Graph) AddArg(parent *IGate, signed int) error {
	if parent.state != StateNormal {
		return nil // already collapsed, nothing further to record
	}
	if (parent.typ == Not || parent.typ == Null) && len(parent.args) >= 1 {
		return invalidGraph("not/null gate cannot take more than one argument")
	}
	idx := abs(signed)
	existingSign, dup := parent.findArgSign(idx)
	if !dup {
		parent.appendArg(signed)
		return nil
	}
	sameSign := existingSign == sign(signed)
	switch parent.typ {
	case And:
		if sameSign {
			return nil
		}
		parent.collapse(StateNull)
	case Or:
		if sameSign {
			return nil
		}
		parent.collapse(StateUnity)
	case Nand:
		if sameSign {
			return nil
		}
		parent.collapse(StateUnity)
	case Nor:
		if sameSign {
			return nil
		}
		parent.collapse(StateNull)
	case Xor:
		// The duplicate is the gate's second argument; a third would
		// exceed XOR's arity.
		if len(parent.args) != 1 {
			return invalidGraph("xor gate cannot take more than two arguments")
		}
		if sameSign {
			parent.collapse(StateNull)
		} else {
			parent.collapse(StateUnity)
		}
	case AtLeast:
		return g.rewriteAtLeastDuplicate(parent, idx, sameSign)
	default:
		return invalidGraph("duplicate argument on a unary gate")
	}
	return nil
}

// rewriteAtLeastDuplicate implements the K-of-N rewrite rule: a duplicate
// literal x added to ATLEAST(k,{x}∪Y) turns the gate into
// OR(AND(x,ATLEAST(max(k-2,0),Y)), ATLEAST(k,Y)), each sub-threshold
// degenerating to a plain AND or OR when it equals the set's size or one,
// and to a constant when it drops to zero or exceeds the set's size.
// The AND-branch drops to k-2, not k-1: x occurs
// twice in the original multiset of args, so committing to x satisfies
// two votes at once.
// An opposite-sign duplicate simply removes both occurrences of the
// literal and shrinks the threshold and argument count by one.
func (g *Graph) rewriteAtLeastDuplicate(parent *IGate, idx int, sameSign bool) error {
	k := parent.voteNumber
	y := make([]int, 0, len(parent.args)-1)
	for _, a := range parent.args {
		if abs(a) != idx {
			y = append(y, a)
		}
	}
	if !sameSign {
		parent.args = y
		parent.varArgs = map[int]struct{}{}
		parent.gateArgs = map[int]struct{}{}
		for _, a := range y {
			if _, isVar := g.vars[abs(a)]; isVar {
				parent.varArgs[a] = struct{}{}
			} else {
				parent.gateArgs[a] = struct{}{}
			}
		}
		parent.voteNumber = k - 1
		return g.retypeAtLeast(parent)
	}

	xSigned := idx
	// Recover x's original sign from the arg list before it was stripped.
	for _, a := range parent.args {
		if abs(a) == idx {
			xSigned = a
			break
		}
	}

	andBranch := g.newGate(And, 0, "")
	atleastRest := g.makeAtLeast(y, max(k-2, 0))
	if err := g.AddArg(andBranch, xSigned); err != nil {
		return err
	}
	if err := g.AddArg(andBranch, atleastRest.index); err != nil {
		return err
	}
	orBranch := g.makeAtLeast(y, k)

	parent.typ = Or
	parent.voteNumber = 0
	parent.args = nil
	parent.varArgs = map[int]struct{}{}
	parent.gateArgs = map[int]struct{}{}
	if err := g.AddArg(parent, andBranch.index); err != nil {
		return err
	}
	return g.AddArg(parent, orBranch.index)
}

// makeAtLeast allocates a fresh gate over the signed args in y with
// threshold k, degenerating to AND/OR/constant per the usual rules.
func (g *Graph) makeAtLeast(y []int, k int) *IGate {
	n := len(y)
	var gt *IGate
	switch {
	case k <= 0:
		gt = g.newGate(Or, 0, "")
		gt.collapse(StateUnity)
		return gt
	case k > n:
		gt = g.newGate(And, 0, "")
		gt.collapse(StateNull)
		return gt
	case k == n:
		gt = g.newGate(And, 0, "")
	case k == 1:
		gt = g.newGate(Or, 0, "")
	default:
		gt = g.newGate(AtLeast, k, "")
	}
	for _, a := range y {
		_ = g.AddArg(gt, a)
	}
	return gt
}

// retypeAtLeast degenerates parent into AND/OR/a constant once its
// threshold or argument count has shrunk, and is a no-op otherwise.
func (g *Graph) retypeAtLeast(parent *IGate) error {
	k := parent.voteNumber
	n := len(parent.args)
	switch {
	case k <= 0:
		parent.collapse(StateUnity)
	case k > n:
		parent.collapse(StateNull)
	case k == n:
		parent.typ = And
	case k == 1:
		parent.typ = Or
	}
	return nil
}

// ProcessConstantArg folds a known Boolean value directly into parent's
// connective instead of appending an argument, per the constant-argument
// contract: AND/OR absorb or short-circuit, NOT/NULL become constants
// outright, and XOR/NAND/NOR/AtLeast reduce to their Shannon cofactor on
// the constant.
func (g *Graph) ProcessConstantArg(parent *IGate, value bool) error {
	if parent.state != StateNormal {
		return nil
	}
	switch parent.typ {
	case And:
		if !value {
			parent.collapse(StateNull)
		}
		// true: absorbed, no change.
	case Or:
		if value {
			parent.collapse(StateUnity)
		}
	case Nand:
		if !value {
			parent.collapse(StateUnity)
		}
	case Nor:
		if value {
			parent.collapse(StateNull)
		}
	case Not:
		if value {
			parent.collapse(StateNull)
		} else {
			parent.collapse(StateUnity)
		}
	case Null:
		if value {
			parent.collapse(StateUnity)
		} else {
			parent.collapse(StateNull)
		}
	case Xor:
		if len(parent.args) != 1 {
			return invalidGraph("xor gate must have exactly one remaining argument when folding a constant")
		}
		remaining := parent.args[0]
		parent.typ = Null
		if value {
			parent.args = []int{-remaining}
		} else {
			parent.args = []int{remaining}
		}
	case AtLeast:
		if value {
			parent.voteNumber--
		}
		return g.retypeAtLeast(parent)
	default:
		return invalidGraph("unexpected connective folding a constant argument")
	}
	return nil
}

// resolveBasicEventArg returns the signed (unnegated) graph index to wire
// for a basic-event argument: the event's own variable when CCF expansion
// is off or the event carries no group, or the index of a synthesized
// OR gate splitting the event into an independent failure mode and the
// group's shared common-cause mode otherwise.
func (g *Graph) resolveBasicEventArg(be *BasicEvent) int {
	if !g.ccfAnalysis || !be.HasCCF() {
		return g.variableFor(be).index
	}
	return g.ccfExpandedGate(be).index
}

// ccfExpandedGate implements the beta-factor CCF model: a member event
// with probability q is split into OR(independent, common), where
// independent fails with probability q·(1-β) and every member of the
// group shares one common-cause variable failing with probability β·q̄,
// q̄ being the group's own (mean member) probability, synthesized and
// wired exactly like a cloned K-of-N sub-gate.
func (g *Graph) ccfExpandedGate(be *BasicEvent) *IGate {
	if gt, ok := g.ccfGateByID[be.ID]; ok {
		return gt
	}
	indep := &BasicEvent{ID: be.ID + "#indep", Prob: be.Prob * (1 - defaultCCFBeta)}
	indepVar := g.variableFor(indep)
	commonVar := g.ccfCommonVariable(be.CCFGroup)

	orGate := g.newGate(Or, 0, be.ID+"#ccf")
	_ = g.AddArg(orGate, indepVar.index)
	_ = g.AddArg(orGate, commonVar.index)
	g.ccfGateByID[be.ID] = orGate
	return orGate
}

// ccfCommonVariable returns the single shared variable representing a
// CCF group's common-cause failure mode, creating it on first use. Its
// probability is β times the group's mean member probability, per the
// classical beta-factor model, not a constant shared identically by
// every group in the fault tree.
func (g *Graph) ccfCommonVariable(group string) *Variable {
	if v, ok := g.ccfCommonByGroup[group]; ok {
		return v
	}
	common := &BasicEvent{ID: "CCF:" + group, Prob: g.ccfGroupProbability(group) * defaultCCFBeta, CCFGroup: group}
	v := g.variableFor(common)
	g.ccfCommonByGroup[group] = v
	return v
}

// ccfGroupProbability returns the mean failure probability of the basic
// events declared in the given CCF group, used as the group's own q in
// the beta-factor formula β·q.
func (g *Graph) ccfGroupProbability(group string) float64 {
	sum, n := 0.0, 0
	for _, be := range g.ccfEvents {
		if be.CCFGroup == group {
			sum += be.Prob
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
