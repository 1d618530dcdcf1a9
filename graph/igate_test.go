package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGraph builds an empty graph with its own index counter, bypassing
// NewGraph's fault-tree conversion so tests can drive AddArg directly.
func newTestGraph() *Graph {
	return &Graph{
		nextIndex:        2,
		gates:            map[int]*IGate{},
		vars:             map[int]*Variable{},
		varByID:          map[string]*Variable{},
		gateByID:         map[*Gate]*IGate{},
		ccfEvents:        map[string]*BasicEvent{},
		ccfGateByID:      map[string]*IGate{},
		ccfCommonByGroup: map[string]*Variable{},
	}
}

func (g *Graph) testVar(id string, prob float64) *Variable {
	return g.variableFor(&BasicEvent{ID: id, Prob: prob})
}

// Scenario 1: AND(a,b,a) with duplicate add of a keeps type AND and args {a,b}.
func TestAddArgAndDuplicateSameSign(t *testing.T) {
	g := newTestGraph()
	a := g.testVar("a", 0.1)
	b := g.testVar("b", 0.2)
	gt := g.newGate(And, 0, "top")

	require.NoError(t, g.AddArg(gt, a.index))
	require.NoError(t, g.AddArg(gt, b.index))
	require.NoError(t, g.AddArg(gt, a.index))

	assert.Equal(t, And, gt.typ)
	assert.Equal(t, StateNormal, gt.state)
	assert.ElementsMatch(t, []int{a.index, b.index}, gt.args)
}

func TestAddArgAndDuplicateOppositeSignCollapsesNull(t *testing.T) {
	g := newTestGraph()
	a := g.testVar("a", 0.1)
	gt := g.newGate(And, 0, "top")

	require.NoError(t, g.AddArg(gt, a.index))
	require.NoError(t, g.AddArg(gt, -a.index))

	assert.Equal(t, StateNull, gt.state)
	assert.Empty(t, gt.args)
}

func TestAddArgOrDuplicateOppositeSignCollapsesUnity(t *testing.T) {
	g := newTestGraph()
	a := g.testVar("a", 0.1)
	gt := g.newGate(Or, 0, "top")

	require.NoError(t, g.AddArg(gt, a.index))
	require.NoError(t, g.AddArg(gt, -a.index))

	assert.Equal(t, StateUnity, gt.state)
}

// Scenario 2: XOR(a) plus duplicate a collapses to Null.
func TestAddArgXorDuplicateSameSignCollapsesNull(t *testing.T) {
	g := newTestGraph()
	a := g.testVar("a", 0.1)
	gt := g.newGate(Xor, 0, "top")

	require.NoError(t, g.AddArg(gt, a.index))
	require.NoError(t, g.AddArg(gt, a.index))

	assert.Equal(t, StateNull, gt.state)
}

// Scenario 4: ATLEAST(k=3,{a,b,c,d,e}) plus duplicate a becomes
// OR(AND(a, ATLEAST(1,{b,c,d,e})), ATLEAST(3,{b,c,d,e})): the duplicate a
// covers two votes, and ATLEAST(1,...) degenerates to OR(b,c,d,e).
func TestAddArgAtLeastDuplicateRewrite(t *testing.T) {
	g := newTestGraph()
	a := g.testVar("a", 0.1)
	b := g.testVar("b", 0.1)
	c := g.testVar("c", 0.1)
	d := g.testVar("d", 0.1)
	e := g.testVar("e", 0.1)
	gt := g.newGate(AtLeast, 3, "top")

	for _, v := range []*Variable{a, b, c, d, e} {
		require.NoError(t, g.AddArg(gt, v.index))
	}
	require.NoError(t, g.AddArg(gt, a.index))

	require.Equal(t, Or, gt.typ)
	require.Len(t, gt.args, 2)

	andBranch, ok := g.Gate(abs(gt.args[0]))
	require.True(t, ok)
	require.Equal(t, And, andBranch.typ)
	require.Len(t, andBranch.args, 2)
	assert.Equal(t, a.index, andBranch.args[0])

	innerAtLeast, ok := g.Gate(abs(andBranch.args[1]))
	require.True(t, ok)
	assert.Equal(t, Or, innerAtLeast.typ)
	assert.ElementsMatch(t, []int{b.index, c.index, d.index, e.index}, innerAtLeast.args)

	restBranch, ok := g.Gate(abs(gt.args[1]))
	require.True(t, ok)
	assert.Equal(t, AtLeast, restBranch.typ)
	assert.Equal(t, 3, restBranch.voteNumber)
	assert.ElementsMatch(t, []int{b.index, c.index, d.index, e.index}, restBranch.args)
}

func TestAddArgAtLeastOppositeSignShrinks(t *testing.T) {
	g := newTestGraph()
	a := g.testVar("a", 0.1)
	b := g.testVar("b", 0.1)
	c := g.testVar("c", 0.1)
	gt := g.newGate(AtLeast, 2, "top")

	require.NoError(t, g.AddArg(gt, a.index))
	require.NoError(t, g.AddArg(gt, b.index))
	require.NoError(t, g.AddArg(gt, c.index))
	require.NoError(t, g.AddArg(gt, -a.index))

	// Removing a's opposite-sign duplicate drops it entirely and the
	// threshold decreases by one, degenerating ATLEAST(1,{b,c}) to OR.
	assert.Equal(t, Or, gt.typ)
	assert.ElementsMatch(t, []int{b.index, c.index}, gt.args)
}

func TestNewGraphAtLeastVoteNumberExceedsArity(t *testing.T) {
	a := &BasicEvent{ID: "a", Prob: 0.1}
	top := &Gate{
		ID:         "top",
		Connective: AtLeast,
		VoteNumber: 2,
		Args:       []Arg{{Kind: KindBasicEvent, BasicEvent: a}},
	}
	ft := &testFaultTree{top: top, basic: map[string]*BasicEvent{"a": a}}

	_, err := NewGraph(ft, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGraph)
}

type testFaultTree struct {
	top   *Gate
	basic map[string]*BasicEvent
	house map[string]*HouseEvent
	ccf   map[string]*BasicEvent
}

func (f *testFaultTree) TopEvent() *Gate                      { return f.top }
func (f *testFaultTree) BasicEvents() map[string]*BasicEvent  { return f.basic }
func (f *testFaultTree) HouseEvents() map[string]*HouseEvent  { return f.house }
func (f *testFaultTree) CCFEvents() map[string]*BasicEvent    { return f.ccf }

func TestProcessConstantArgAndShortCircuits(t *testing.T) {
	g := newTestGraph()
	a := g.testVar("a", 0.1)
	gt := g.newGate(And, 0, "top")
	require.NoError(t, g.AddArg(gt, a.index))

	require.NoError(t, g.ProcessConstantArg(gt, false))
	assert.Equal(t, StateNull, gt.state)
}

func TestProcessConstantArgOrAbsorbs(t *testing.T) {
	g := newTestGraph()
	a := g.testVar("a", 0.1)
	gt := g.newGate(Or, 0, "top")
	require.NoError(t, g.AddArg(gt, a.index))

	require.NoError(t, g.ProcessConstantArg(gt, true))
	assert.Equal(t, StateUnity, gt.state)
}

func TestCCFExpansionSharesCommonCauseVariable(t *testing.T) {
	g := newTestGraph()
	g.ccfAnalysis = true
	e1 := &BasicEvent{ID: "e1", Prob: 0.1, CCFGroup: "grp"}
	e2 := &BasicEvent{ID: "e2", Prob: 0.2, CCFGroup: "grp"}
	g.ccfEvents["e1"] = e1
	g.ccfEvents["e2"] = e2

	g1 := g.ccfExpandedGate(e1)
	g2 := g.ccfExpandedGate(e2)

	require.Equal(t, Or, g1.typ)
	require.Equal(t, Or, g2.typ)
	common := g.ccfCommonByGroup["grp"]
	require.NotNil(t, common)
	assert.Contains(t, g1.args, common.index)
	assert.Contains(t, g2.args, common.index)
	// group mean is (0.1+0.2)/2 = 0.15, scaled by the default beta of 0.1.
	assert.InDelta(t, 0.15*defaultCCFBeta, common.event.Prob, 1e-12)
}

func TestCCFCommonCauseProbabilityFollowsGroupMean(t *testing.T) {
	g := newTestGraph()
	g.ccfAnalysis = true
	lo := &BasicEvent{ID: "lo", Prob: 1e-4, CCFGroup: "low"}
	hi := &BasicEvent{ID: "hi", Prob: 0.5, CCFGroup: "high"}
	g.ccfEvents["lo"] = lo
	g.ccfEvents["hi"] = hi

	g.ccfExpandedGate(lo)
	g.ccfExpandedGate(hi)

	loCommon := g.ccfCommonByGroup["low"]
	hiCommon := g.ccfCommonByGroup["high"]
	require.NotNil(t, loCommon)
	require.NotNil(t, hiCommon)
	assert.NotEqual(t, loCommon.event.Prob, hiCommon.event.Prob)
	assert.InDelta(t, 1e-4*defaultCCFBeta, loCommon.event.Prob, 1e-15)
	assert.InDelta(t, 0.5*defaultCCFBeta, hiCommon.event.Prob, 1e-12)
}
