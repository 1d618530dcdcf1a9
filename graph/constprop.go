package graph

// FoldCollapsedArgs scans every gate once and folds any argument that
// points at an already-collapsed (Null/Unity) gate directly into the
// parent's connective, exactly as ProcessConstantArg would fold a house
// event — except the constant argument must first be removed from the
// parent's argument list, since it was added as a real argument earlier
// in construction. It reports whether any gate changed, so callers can
// iterate to a fixed point (collapses can cascade upward).
func (g *Graph) FoldCollapsedArgs() (bool, error) {
	changed := false
	for _, parent := range g.gates {
		if parent.state != StateNormal {
			continue
		}
		for _, signedArg := range append([]int(nil), parent.args...) {
			child, ok := g.gates[abs(signedArg)]
			if !ok || child.state == StateNormal {
				continue
			}
			effective := child.state == StateUnity
			if signedArg < 0 {
				effective = !effective
			}
			if err := g.foldConstantInto(parent, signedArg, effective); err != nil {
				return changed, err
			}
			changed = true
			if parent.state != StateNormal {
				break
			}
		}
	}
	return changed, nil
}

// foldConstantInto removes signedArg from parent and applies the
// constant-argument contract for the remaining connective.
func (g *Graph) foldConstantInto(parent *IGate, signedArg int, value bool) error {
	switch parent.typ {
	case Not:
		parent.removeArg(abs(signedArg))
		parent.collapse(boolState(!value))
	case Null:
		parent.removeArg(abs(signedArg))
		parent.collapse(boolState(value))
	case And, Nand:
		return g.foldAndLike(parent, signedArg, value, parent.typ == Nand)
	case Or, Nor:
		return g.foldOrLike(parent, signedArg, value, parent.typ == Nor)
	case Xor:
		if len(parent.args) != 2 {
			return invalidGraph("xor gate must have exactly two arguments before folding")
		}
		parent.removeArg(abs(signedArg))
		remaining := parent.args[0]
		parent.typ = Null
		if value {
			parent.args = []int{-remaining}
		} else {
			parent.args = []int{remaining}
		}
	case AtLeast:
		parent.removeArg(abs(signedArg))
		if value {
			parent.voteNumber--
		}
		return g.retypeAtLeast(parent)
	default:
		return invalidGraph("unexpected connective folding a collapsed gate argument")
	}
	return nil
}

func boolState(v bool) State {
	if v {
		return StateUnity
	}
	return StateNull
}

func (g *Graph) foldAndLike(parent *IGate, signedArg int, value bool, negate bool) error {
	if !value {
		parent.collapse(boolState(negate)) // AND -> Null, NAND -> Unity
		return nil
	}
	parent.removeArg(abs(signedArg))
	switch len(parent.args) {
	case 0:
		parent.collapse(boolState(!negate)) // empty AND is vacuously true; NAND negates it
	case 1:
		parent.typ = Null
		if negate {
			parent.args = []int{-parent.args[0]}
		}
	}
	return nil
}

func (g *Graph) foldOrLike(parent *IGate, signedArg int, value bool, negate bool) error {
	if value {
		parent.collapse(boolState(!negate)) // OR -> Unity, NOR -> Null
		return nil
	}
	parent.removeArg(abs(signedArg))
	switch len(parent.args) {
	case 0:
		parent.collapse(boolState(negate)) // empty OR is vacuously false; NOR negates it
	case 1:
		parent.typ = Null
		if negate {
			parent.args = []int{-parent.args[0]}
		}
	}
	return nil
}
