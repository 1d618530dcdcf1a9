// Package bdd implements a Reduced Ordered Binary Decision Diagram with
// complement edges on the low branch only, following the arena-of-records
// re-architecture guidance: nodes live in a flat slice indexed by id, the
// unique table maps a (level, high, signed low) triplet to that id, and
// id 1 is the single reserved terminal.
package bdd

import "github.com/sirupsen/logrus"

// Function is a reference to a BDD: the id of an arena node together with
// a flag saying whether the whole function is the complement of that
// node's graph. A single terminal (id 1) plus this top-level complement
// bit is enough to represent both Boolean constants and to halve the
// number of nodes a typical formula needs.
type Function struct {
	Complement bool
	ID         int
}

func negate(f Function) Function { return Function{!f.Complement, f.ID} }

const terminalID = 1

type iteNode struct {
	level         int
	high          int // unsigned arena id; the high edge is never complemented
	low           int // unsigned arena id
	lowComplement bool
	refcou        int
	freed         bool
}

type uniqueKey struct {
	level     int
	high      int
	signedLow int
}

// BDD is one run's arena of ITE nodes, its unique table, and its AND/OR
// compute caches. It is single-threaded, cooperative within one analysis
// run, following the teacher's model of one BDD per goroutine.
type BDD struct {
	nodes    []iteNode
	unique   map[uniqueKey]int
	freeList []int

	andCache map[cacheKey]Function
	orCache  map[cacheKey]Function

	gcEnabled bool
	refstack  []int
	maxNodes  int

	log   *logrus.Entry
	stats Stats
}

// Stats tracks bookkeeping counters exposed for diagnostics, mirroring
// the teacher's gcstat/produced counters.
type Stats struct {
	Produced       int
	GCRuns         int
	UniqueHits     int
	UniqueMisses   int
	NodesReclaimed int
}

// New creates an empty BDD arena. log may be nil, in which case a
// disabled logger entry is used.
func New(log *logrus.Entry) *BDD {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
		log.Logger.SetLevel(logrus.PanicLevel)
	}
	b := &BDD{
		nodes:     make([]iteNode, 2), // index 0 unused, index 1 is the terminal
		unique:    map[uniqueKey]int{},
		andCache:  map[cacheKey]Function{},
		orCache:   map[cacheKey]Function{},
		gcEnabled: true,
		log:       log,
	}
	b.nodes[terminalID] = iteNode{level: -1, refcou: 1}
	return b
}

// True returns the constant true function.
func (b *BDD) True() Function { return Function{false, terminalID} }

// False returns the constant false function.
func (b *BDD) False() Function { return Function{true, terminalID} }

// From returns the constant function corresponding to v.
func (b *BDD) From(v bool) Function {
	if v {
		return b.True()
	}
	return b.False()
}

// IsTerminal reports whether f is one of the two Boolean constants.
func (b *BDD) IsTerminal(f Function) bool { return f.ID == terminalID }

// Level returns f's top variable level, or -1 for a terminal.
func (b *BDD) Level(f Function) int {
	if f.ID == terminalID {
		return -1
	}
	return b.nodes[f.ID].level
}

// SetGCEnabled toggles whether node reclamation runs automatically.
// Bulk rewrites that churn through many transient nodes disable it to
// avoid paying the mark-and-sweep cost repeatedly, then re-enable it and
// reclaim once at the end.
func (b *BDD) SetGCEnabled(v bool) { b.gcEnabled = v }

// SetNodeLimit caps the arena's live node count; 0 means unbounded. The
// builder checks this after every gate it finishes compiling, not on
// every makeNode call, since apply's recursion must be free to grow the
// arena transiently before the next Reclaim can shrink it back down.
func (b *BDD) SetNodeLimit(n int) { b.maxNodes = n }

func (b *BDD) overLimit() bool {
	return b.maxNodes > 0 && b.NodeCount() > b.maxNodes
}

// cofactor returns f's (low, high) cofactors with respect to level lvl.
// If f's own top level is not lvl, f does not depend on that level and
// both cofactors are f itself.
func (b *BDD) cofactor(f Function, lvl int) (low, high Function) {
	if f.ID == terminalID {
		return f, f
	}
	n := b.nodes[f.ID]
	if n.level != lvl {
		return f, f
	}
	low = Function{n.lowComplement, n.low}
	high = Function{false, n.high}
	if f.Complement {
		low = negate(low)
		high = negate(high)
	}
	return low, high
}

// Var returns the decision function for the variable at level: true
// along its high edge, false along its low edge.
func (b *BDD) Var(level int) Function { return b.makeNode(level, b.True(), b.False()) }

// Children returns f's own top variable level and its (low, high)
// cofactors with respect to that level. For a terminal, level is -1 and
// both cofactors are f itself.
func (b *BDD) Children(f Function) (level int, low, high Function) {
	level = b.Level(f)
	low, high = b.cofactor(f, level)
	return level, low, high
}

// Value returns the Boolean constant f represents. f must be terminal;
// callers should check IsTerminal first.
func (b *BDD) Value(f Function) bool { return b.constValue(f) }

// makeNode returns the unique ITE vertex for (level, high, low), folding
// the redundant-node rule (high == low returns low directly) and the
// canonical form that keeps the high edge uncomplemented (flipping the
// whole result's sign and both children instead).
func (b *BDD) makeNode(level int, high, low Function) Function {
	if high == low {
		return low
	}
	resultComplement := false
	if high.Complement {
		high = negate(high)
		low = negate(low)
		resultComplement = true
	}
	signedLow := low.ID
	if low.Complement {
		signedLow = -signedLow
	}
	key := uniqueKey{level, high.ID, signedLow}
	if id, ok := b.unique[key]; ok {
		b.stats.UniqueHits++
		return Function{resultComplement, id}
	}
	b.stats.UniqueMisses++
	id := b.allocNode(level, high.ID, low.ID, low.Complement)
	b.unique[key] = id
	return Function{resultComplement, id}
}

func (b *BDD) allocNode(level, high, low int, lowComplement bool) int {
	b.stats.Produced++
	n := iteNode{level: level, high: high, low: low, lowComplement: lowComplement}
	if len(b.freeList) > 0 {
		id := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.nodes[id] = n
		return id
	}
	b.nodes = append(b.nodes, n)
	return len(b.nodes) - 1
}
