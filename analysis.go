// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package faulttree runs a full probabilistic risk analysis over a
// Boolean fault tree: preprocessing, BDD construction, minimal-cut-set
// enumeration via ZBDD, and probability/importance computation.
package faulttree

import (
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dalzilio-faulttree/faulttree/bdd"
	"github.com/dalzilio-faulttree/faulttree/graph"
	"github.com/dalzilio-faulttree/faulttree/importance"
	"github.com/dalzilio-faulttree/faulttree/preprocess"
	"github.com/dalzilio-faulttree/faulttree/zbdd"
)

// Settings holds the parameters of one analysis run. Pass functional
// options to Analyze to override the defaults rather than constructing
// one by hand.
type Settings struct {
	ccfAnalysis         bool
	limitOrder          int
	cutOff              float64
	maxNodes            int
	probabilityAnalysis bool
	importanceAnalysis  bool
	log                 *logrus.Entry
}

func defaultSettings() *Settings {
	return &Settings{
		limitOrder:          0, // 0: no cardinality limit on retained cut sets
		cutOff:              0, // 0: no probability cutoff
		maxNodes:            0, // 0: no cap on the BDD arena
		probabilityAnalysis: true,
		importanceAnalysis:  true,
		log:                 logrus.NewEntry(logrus.New()),
	}
}

// CCFAnalysis is a Settings option enabling the beta-factor common-cause
// failure expansion of basic events that belong to a CCF group.
func CCFAnalysis(enabled bool) func(*Settings) {
	return func(s *Settings) { s.ccfAnalysis = enabled }
}

// LimitOrder is a Settings option bounding the cardinality of the cut
// sets CutSets enumeration retains. Zero means unbounded.
func LimitOrder(n int) func(*Settings) {
	return func(s *Settings) { s.limitOrder = n }
}

// CutOff is a Settings option discarding cut sets whose rare-event
// probability estimate falls below the given threshold. Zero disables
// the cutoff.
func CutOff(p float64) func(*Settings) {
	return func(s *Settings) { s.cutOff = p }
}

// MaxNodes is a Settings option capping the BDD arena's live node
// count. Zero means unbounded, at the risk of unbounded memory growth
// on a pathological graph.
func MaxNodes(n int) func(*Settings) {
	return func(s *Settings) { s.maxNodes = n }
}

// ProbabilityAnalysis is a Settings option enabling exact top-event
// probability propagation over the BDD and the rare-event sum. Enabled
// by default. Disabling it does not disable importance analysis, which
// ImportanceAnalysis controls separately.
func ProbabilityAnalysis(enabled bool) func(*Settings) {
	return func(s *Settings) { s.probabilityAnalysis = enabled }
}

// ImportanceAnalysis is a Settings option enabling the per-basic-event
// importance measures (Birnbaum, Fussell-Vesely, criticality, risk
// reduction/achievement worth). Enabled by default.
func ImportanceAnalysis(enabled bool) func(*Settings) {
	return func(s *Settings) { s.importanceAnalysis = enabled }
}

// Logger is a Settings option overriding the structured logger used to
// trace the preprocessing pipeline and analysis stages.
func Logger(log *logrus.Entry) func(*Settings) {
	return func(s *Settings) { s.log = log }
}

// Results is the outcome of one Analyze call.
type Results struct {
	RunID                string
	TopEventProbability  float64
	SumMCSProbability    float64 // rare-event approximation: sum of retained cut sets' probabilities
	MaxOrder             int
	CutSets              []zbdd.CutSet
	DiscardedCutSets     int
	Importance           map[string]importance.Factors

	LevelName map[int]string // BDD level -> basic event id, for decoding CutSets
}

// Analyze runs the full pipeline over ft: converts it to a Boolean
// graph, preprocesses the graph, compiles a BDD, enumerates and
// minimizes its cut sets via ZBDD, and computes probability and
// importance measures.
func Analyze(ft graph.FaultTree, opts ...func(*Settings)) (results *Results, err error) {
	settings := defaultSettings()
	for _, o := range opts {
		o(settings)
	}

	start := time.Now()
	nodes := 0
	defer func() { recordAnalysis(start, nodes, results, err) }()

	runID := uuid.NewString()
	log := settings.log.WithField("run_id", runID)

	g, err := graph.NewGraph(ft, settings.ccfAnalysis)
	if err != nil {
		return nil, pkgerrors.Wrap(ErrInvalidGraph, err.Error())
	}

	if err := preprocess.NewPipeline(log).Run(g); err != nil {
		return nil, pkgerrors.Wrap(ErrInvalidGraph, err.Error())
	}

	switch g.Top().State() {
	case graph.StateNull:
		log.Warn("The top event is NULL. Success is guaranteed.")
	case graph.StateUnity:
		log.Warn("The top event is UNITY. Failure is guaranteed.")
	}

	arena := bdd.New(log)
	arena.SetNodeLimit(settings.maxNodes)
	builder := bdd.NewBuilder(g, arena)
	top, err := builder.Build()
	if err != nil {
		if pkgerrors.Is(err, bdd.ErrResourceExhausted) {
			return nil, pkgerrors.Wrap(ErrResourceExhausted, err.Error())
		}
		return nil, err
	}

	probs, levelName := gatherProbabilities(g)

	var topProb float64
	if settings.probabilityAnalysis {
		topProb, err = importance.Probability(arena, top, probs)
		if err != nil {
			return nil, err
		}
	}

	z := zbdd.FromBDD(arena, top)
	z = z.MinimizeBySubsumption()
	prob := func(level int) float64 { return probs[level] }
	cutSets, discarded := z.CutSets(settings.limitOrder, settings.cutOff, prob)

	maxOrder := 0
	sumProb := 0.0
	for _, cs := range cutSets {
		if len(cs) > maxOrder {
			maxOrder = len(cs)
		}
		if !settings.probabilityAnalysis {
			continue
		}
		p := 1.0
		for _, v := range cs {
			p *= probs[v]
		}
		sumProb += p
	}

	var factors map[string]importance.Factors
	if settings.importanceAnalysis {
		factors, err = importance.Importance(arena, top, probs, levelName)
		if err != nil {
			return nil, err
		}
	}

	nodes = arena.NodeCount()

	return &Results{
		RunID:               runID,
		TopEventProbability: topProb,
		SumMCSProbability:   sumProb,
		MaxOrder:            maxOrder,
		CutSets:             cutSets,
		DiscardedCutSets:    discarded,
		Importance:          factors,
		LevelName:           levelName,
	}, nil
}

func gatherProbabilities(g *graph.Graph) (map[int]float64, map[int]string) {
	probs := make(map[int]float64)
	names := make(map[int]string)
	for _, v := range g.Variables() {
		probs[v.Order()] = v.Event().Prob
		names[v.Order()] = v.Event().ID
	}
	return probs, names
}
