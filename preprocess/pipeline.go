// Package preprocess implements the fixed sequence of graph-rewriting
// passes that turn a freshly built indexed Boolean graph into the
// canonical, variable-ordered form the BDD engine expects.
package preprocess

import (
	"github.com/sirupsen/logrus"

	"github.com/dalzilio-faulttree/faulttree/graph"
)

// Pass is one rewriting step over the Boolean graph.
type Pass func(*graph.Graph) error

// namedPass pairs a Pass with a name for logging.
type namedPass struct {
	name string
	run  Pass
}

// Pipeline is the fixed, ordered sequence of preprocessing passes.
type Pipeline struct {
	passes []namedPass
	log    *logrus.Entry
}

// NewPipeline builds the standard pipeline in its mandated order:
// ConstantPropagation, Normalize, PropagateNot, CoalesceGates,
// DetectModules, AssignOrder.
func NewPipeline(log *logrus.Entry) *Pipeline {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Pipeline{
		log: log,
		passes: []namedPass{
			{"constant-propagation", ConstantPropagation},
			{"normalize", Normalize},
			{"propagate-not", PropagateNot},
			{"coalesce-gates", CoalesceGates},
			{"detect-modules", DetectModules},
			{"assign-order", AssignOrder},
		},
	}
}

// Run executes every pass over g in order, stopping at the first error.
func (p *Pipeline) Run(g *graph.Graph) error {
	for _, pass := range p.passes {
		p.log.WithField("pass", pass.name).Debug("running preprocessing pass")
		if err := pass.run(g); err != nil {
			return err
		}
	}
	return nil
}
