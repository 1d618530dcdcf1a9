package preprocess

import (
	"sort"

	"github.com/dalzilio-faulttree/faulttree/graph"
)

// AssignOrder assigns every variable and every module gate a position in
// the BDD's variable order. A module gate's slot is reserved for its use
// as a pseudo-variable, but bdd.Builder does not use it: the builder
// compiles module gates inline like any other gate, so their positions
// are simply skipped levels in the BDD. The order itself is the ascending order of each
// level's own run-scoped index — simple, deterministic, and good enough
// once modules have already cut the graph into independent pieces; a
// smarter heuristic (e.g. minimizing bandwidth) can replace this pass
// without touching anything downstream.
func AssignOrder(g *graph.Graph) error {
	type level struct{ index int }
	var levels []level
	for idx := range g.Variables() {
		levels = append(levels, level{idx})
	}
	for idx, gt := range g.Gates() {
		if gt.IsModule() {
			levels = append(levels, level{idx})
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].index < levels[j].index })

	for pos, lv := range levels {
		if v, ok := g.Variable(lv.index); ok {
			v.SetOrder(pos)
			continue
		}
		if gt, ok := g.Gate(lv.index); ok {
			gt.SetOrder(pos)
		}
	}
	return nil
}
