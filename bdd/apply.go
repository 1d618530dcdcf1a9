package bdd

// cacheKey identifies one (F,G) operand pair in a compute cache. Only
// AND and OR need caches: NOT is a constant-time complement-bit flip,
// and ITE decomposes into AND/OR so it never needs a cache of its own.
type cacheKey struct {
	f Function
	g Function
}

// canonicalPair orders two operands so that a commutative operator's
// cache sees AND(F,G) and AND(G,F) as the same entry.
func canonicalPair(f, g Function) (Function, Function) {
	if f.ID > g.ID || (f.ID == g.ID && f.Complement) {
		return g, f
	}
	return f, g
}

// Not returns the complement of f. Complementation never allocates a
// node: it only flips the top-level sign bit, which is the entire point
// of carrying a complement edge.
func (b *BDD) Not(f Function) Function { return negate(f) }

// And returns the conjunction of f and g.
func (b *BDD) And(f, g Function) Function { return b.apply(opAnd, f, g) }

// Or returns the disjunction of f and g. It runs the same apply
// recursion as And, so the two operators share one recursive shape and
// only their terminal cases and cache differ.
func (b *BDD) Or(f, g Function) Function { return b.apply(opOr, f, g) }

// Xor returns the exclusive-or of f and g, built from the two primitive
// operators plus complementation.
func (b *BDD) Xor(f, g Function) Function {
	return b.Or(b.And(f, negate(g)), b.And(negate(f), g))
}

// Ite returns the if-then-else of (cond, then, els), decomposed into
// AND/OR/NOT so it needs no compute cache of its own.
func (b *BDD) Ite(cond, then, els Function) Function {
	return b.Or(b.And(cond, then), b.And(negate(cond), els))
}

type bddOp int

const (
	opAnd bddOp = iota
	opOr
)

// apply implements the classical Shannon-expansion algorithm for a
// binary Boolean operator: handle the terminal case, the idempotence
// shortcut (F==G), the complement shortcut (F==NOT G), a cache lookup,
// then recurse on the top variable's cofactors and combine.
func (b *BDD) apply(op bddOp, f, g Function) Function {
	if f.ID == terminalID || g.ID == terminalID {
		return b.applyTerminal(op, f, g)
	}
	if f == g {
		return f
	}
	if f == negate(g) {
		return b.applyOppositeTerminal(op)
	}

	cf, cg := canonicalPair(f, g)
	key := cacheKey{cf, cg}
	cache := b.cacheFor(op)
	if hit, ok := cache[key]; ok {
		return hit
	}

	lvl := b.Level(f)
	if gl := b.Level(g); gl < lvl {
		lvl = gl
	}
	fLow, fHigh := b.cofactor(f, lvl)
	gLow, gHigh := b.cofactor(g, lvl)

	depth := len(b.refstack)
	b.pushRef(fLow, fHigh, gLow, gHigh)
	low := b.apply(op, fLow, gLow)
	b.pushRef(low)
	high := b.apply(op, fHigh, gHigh)
	b.popRef(len(b.refstack) - depth)

	result := b.makeNode(lvl, high, low)
	cache[key] = result
	return result
}

func (b *BDD) cacheFor(op bddOp) map[cacheKey]Function {
	if op == opAnd {
		return b.andCache
	}
	return b.orCache
}

// applyTerminal resolves AND/OR when at least one operand is a Boolean
// constant.
func (b *BDD) applyTerminal(op bddOp, f, g Function) Function {
	fc, gc := b.constValue(f), b.constValue(g)
	switch op {
	case opAnd:
		if f.ID == terminalID {
			if fc {
				return g
			}
			return b.False()
		}
		if gc {
			return f
		}
		return b.False()
	default: // opOr
		if f.ID == terminalID {
			if fc {
				return b.True()
			}
			return g
		}
		if gc {
			return b.True()
		}
		return f
	}
}

func (b *BDD) applyOppositeTerminal(op bddOp) Function {
	if op == opAnd {
		return b.False()
	}
	return b.True()
}

// constValue reports the Boolean value of f, which must be a terminal.
func (b *BDD) constValue(f Function) bool {
	return !f.Complement
}
