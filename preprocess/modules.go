package preprocess

import "github.com/dalzilio-faulttree/faulttree/graph"

// DetectModules marks every gate whose variables are disjoint from the
// rest of the graph: a gate g is a module when every gate that directly
// references one of g's variables is itself inside g's own subtree. Such
// a gate can be solved into its own BDD and substituted into the rest of
// the analysis as a single pseudo-variable.
func DetectModules(g *graph.Graph) error {
	subtreeVars := map[int]map[int]bool{}
	subtreeGates := map[int]map[int]bool{}
	var walk func(idx int)
	walk = func(idx int) {
		if _, done := subtreeVars[idx]; done {
			return
		}
		gt, ok := g.Gate(idx)
		if !ok {
			return
		}
		vars := map[int]bool{}
		gates := map[int]bool{idx: true}
		subtreeVars[idx] = vars // reserve slot to guard against revisits on shared subgraphs
		subtreeGates[idx] = gates
		for _, a := range gt.Args() {
			child := abs(a)
			if _, isVar := g.Variable(child); isVar {
				vars[child] = true
				continue
			}
			walk(child)
			for v := range subtreeVars[child] {
				vars[v] = true
			}
			for gi := range subtreeGates[child] {
				gates[gi] = true
			}
		}
	}
	for idx := range g.Gates() {
		walk(idx)
	}

	directUsers := map[int][]int{}
	for idx, gt := range g.Gates() {
		for v := range gt.VarArgs() {
			directUsers[abs(v)] = append(directUsers[abs(v)], idx)
		}
	}

	for idx, gt := range g.Gates() {
		if gt.State() != graph.StateNormal {
			continue
		}
		isModule := true
		for v := range subtreeVars[idx] {
			for _, user := range directUsers[v] {
				if !subtreeGates[idx][user] {
					isModule = false
					break
				}
			}
			if !isModule {
				break
			}
		}
		gt.SetModule(isModule && len(subtreeVars[idx]) > 0 && idx != g.Top().Index())
	}
	return nil
}
