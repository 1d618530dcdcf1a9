package bdd

import (
	"fmt"

	"github.com/dalzilio-faulttree/faulttree/graph"
)

// Build compiles a preprocessed Boolean graph into a BDD rooted at the
// top gate's Function. Variables become terminal-level decision nodes at
// their assigned Order(); And/Or gates combine their children's
// Functions with And/Or; a Null gate is a signed passthrough (its sign
// carries the De Morgan-style negation that replaced NOT/NAND/NOR during
// preprocessing). Every gate is built exactly once and every further
// reference to it reuses the memoized Function value. Module gates get no
// special treatment: they are compiled inline into the same arena like
// any other gate, and their IsModule flag and Order() are not read here.
type Builder struct {
	b   *BDD
	g   *graph.Graph
	memo map[int]Function // keyed by unsigned gate index
}

// NewBuilder creates a Builder that compiles g into the given arena.
func NewBuilder(g *graph.Graph, b *BDD) *Builder {
	return &Builder{b: b, g: g, memo: map[int]Function{}}
}

// Build returns the Function for the graph's top gate, with an external
// reference added so it survives Reclaim. The Function belongs to the
// arena passed to NewBuilder, which the caller keeps using for further
// operations (Ite, probability propagation, cut-set enumeration).
func (bld *Builder) Build() (Function, error) {
	top := bld.g.Top()
	f, err := bld.gateFunction(top.Index())
	if err != nil {
		return Function{}, err
	}
	bld.b.AddRef(f)
	return f, nil
}

// signed resolves a signed literal (positive or negative gate/variable
// index) to its Function, applying the sign as a complement.
func (bld *Builder) signed(lit int) (Function, error) {
	idx := lit
	neg := false
	if idx < 0 {
		idx = -idx
		neg = true
	}
	f, err := bld.indexFunction(idx)
	if err != nil {
		return Function{}, err
	}
	if neg {
		f = negate(f)
	}
	return f, nil
}

func (bld *Builder) indexFunction(idx int) (Function, error) {
	if v, ok := bld.g.Variable(idx); ok {
		return bld.b.makeNode(v.Order(), bld.b.True(), bld.b.False()), nil
	}
	return bld.gateFunction(idx)
}

func (bld *Builder) gateFunction(idx int) (Function, error) {
	if f, ok := bld.memo[idx]; ok {
		return f, nil
	}
	gt, ok := bld.g.Gate(idx)
	if !ok {
		return Function{}, fmt.Errorf("bdd: no gate with index %d", idx)
	}

	var result Function
	switch gt.State() {
	case graph.StateUnity:
		result = bld.b.True()
	case graph.StateNull:
		result = bld.b.False()
	default:
		var err error
		result, err = bld.buildNormal(gt)
		if err != nil {
			return Function{}, err
		}
	}

	bld.b.AddRef(result)
	bld.memo[idx] = result
	if bld.b.overLimit() {
		if bld.b.Reclaim() == 0 {
			return Function{}, resourceExhausted(fmt.Sprintf("gate %q exceeded node limit", gt.Label()))
		}
	}
	return result, nil
}

func (bld *Builder) buildNormal(gt *graph.IGate) (Function, error) {
	switch gt.Type() {
	case graph.And:
		acc := bld.b.True()
		for _, lit := range gt.Args() {
			child, err := bld.signed(lit)
			if err != nil {
				return Function{}, err
			}
			acc = bld.b.And(acc, child)
		}
		return acc, nil
	case graph.Or:
		acc := bld.b.False()
		for _, lit := range gt.Args() {
			child, err := bld.signed(lit)
			if err != nil {
				return Function{}, err
			}
			acc = bld.b.Or(acc, child)
		}
		return acc, nil
	case graph.Null:
		if len(gt.Args()) != 1 {
			return Function{}, fmt.Errorf("bdd: Null gate %q has %d args, want 1", gt.Label(), len(gt.Args()))
		}
		return bld.signed(gt.Args()[0])
	default:
		return Function{}, fmt.Errorf("bdd: gate %q has unexpected connective %v after preprocessing", gt.Label(), gt.Type())
	}
}
