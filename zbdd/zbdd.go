// Package zbdd implements a Zero-suppressed BDD over the variables of a
// fault tree's BDD, used to enumerate its minimal cut sets. A ZBDD
// vertex is (var, then, else); unlike the bdd package's ITE vertices,
// there are no complement edges, and a vertex whose then-child is the
// empty-family terminal is skipped (the zero-suppression rule).
package zbdd

const (
	// emptyFamily is the family containing no sets at all (the
	// Boolean-zero analogue).
	emptyFamily = 0
	// unitFamily is the family containing exactly the empty set (the
	// Boolean-one analogue): every path that reaches it contributes the
	// set of variables assigned true along the way, which is `{}`.
	unitFamily = 1
)

type vertex struct {
	v      int
	then_  int
	else_  int
}

type uniqueKey struct {
	v     int
	then_ int
	else_ int
}

// ZBDD is an arena of zero-suppressed vertices built from a bdd.BDD's
// onset, used to enumerate and minimize cut sets.
type ZBDD struct {
	nodes  []vertex
	unique map[uniqueKey]int
	root   int
}

// EmptyFamily reports whether id names the family with no sets.
func (z *ZBDD) EmptyFamily(id int) bool { return id == emptyFamily }

// UnitFamily reports whether id names the family containing only the
// empty set.
func (z *ZBDD) UnitFamily(id int) bool { return id == unitFamily }

// Root returns the id of the family this ZBDD represents.
func (z *ZBDD) Root() int { return z.root }

func newArena() *ZBDD {
	return &ZBDD{
		nodes:  make([]vertex, 2),
		unique: map[uniqueKey]int{},
	}
}

// makeNode returns the unique vertex for (v, then_, else_), applying the
// zero-suppression rule: a node whose then-child is the empty family
// contributes nothing and is skipped in favor of its else-child.
func (z *ZBDD) makeNode(v, then_, else_ int) int {
	if then_ == emptyFamily {
		return else_
	}
	key := uniqueKey{v, then_, else_}
	if id, ok := z.unique[key]; ok {
		return id
	}
	z.nodes = append(z.nodes, vertex{v: v, then_: then_, else_: else_})
	id := len(z.nodes) - 1
	z.unique[key] = id
	return id
}

func (z *ZBDD) node(id int) vertex { return z.nodes[id] }
