package preprocess

import "github.com/dalzilio-faulttree/faulttree/graph"

// ConstantPropagation folds collapsed (Null/Unity) gates into their
// parents' connectives until the graph reaches a fixed point: a gate
// collapsing can make its own parent collapse in turn, so one pass is
// not always enough.
func ConstantPropagation(g *graph.Graph) error {
	for {
		changed, err := g.FoldCollapsedArgs()
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
	}
}
