// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package faulttree

import (
	"math"
	"testing"

	"github.com/dalzilio-faulttree/faulttree/graph"
)

type fakeFaultTree struct {
	top   *graph.Gate
	basic map[string]*graph.BasicEvent
}

func (f *fakeFaultTree) TopEvent() *graph.Gate                     { return f.top }
func (f *fakeFaultTree) BasicEvents() map[string]*graph.BasicEvent { return f.basic }
func (f *fakeFaultTree) HouseEvents() map[string]*graph.HouseEvent { return nil }
func (f *fakeFaultTree) CCFEvents() map[string]*graph.BasicEvent   { return nil }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAnalyzeSimpleAndGate(t *testing.T) {
	a := &graph.BasicEvent{ID: "a", Prob: 0.1}
	b := &graph.BasicEvent{ID: "b", Prob: 0.2}
	top := &graph.Gate{
		ID:         "top",
		Connective: graph.And,
		Args: []graph.Arg{
			{Kind: graph.KindBasicEvent, BasicEvent: a},
			{Kind: graph.KindBasicEvent, BasicEvent: b},
		},
	}
	ft := &fakeFaultTree{top: top, basic: map[string]*graph.BasicEvent{"a": a, "b": b}}

	results, err := Analyze(ft)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(results.TopEventProbability, 0.02) {
		t.Fatalf("TopEventProbability = %v, want 0.02", results.TopEventProbability)
	}
	if len(results.CutSets) != 1 || len(results.CutSets[0]) != 2 {
		t.Fatalf("expected a single order-2 cut set, got %v", results.CutSets)
	}
	if results.RunID == "" {
		t.Fatal("expected a non-empty RunID")
	}
}

func TestAnalyzeTwoPathTopEvent(t *testing.T) {
	a := &graph.BasicEvent{ID: "a", Prob: 0.1}
	b := &graph.BasicEvent{ID: "b", Prob: 0.1}
	c := &graph.BasicEvent{ID: "c", Prob: 0.1}
	top := &graph.Gate{
		ID:         "top",
		Connective: graph.Or,
		Args: []graph.Arg{
			{Kind: graph.KindGate, Gate: &graph.Gate{
				ID:         "g1",
				Connective: graph.And,
				Args: []graph.Arg{
					{Kind: graph.KindBasicEvent, BasicEvent: a},
					{Kind: graph.KindBasicEvent, BasicEvent: b},
				},
			}},
			{Kind: graph.KindGate, Gate: &graph.Gate{
				ID:         "g2",
				Connective: graph.And,
				Args: []graph.Arg{
					{Kind: graph.KindBasicEvent, BasicEvent: a},
					{Kind: graph.KindBasicEvent, BasicEvent: c},
				},
			}},
		},
	}
	ft := &fakeFaultTree{top: top, basic: map[string]*graph.BasicEvent{"a": a, "b": b, "c": c}}

	results, err := Analyze(ft)
	if err != nil {
		t.Fatal(err)
	}
	if len(results.CutSets) != 2 {
		t.Fatalf("expected two minimal cut sets {a,b} and {a,c}, got %v", results.CutSets)
	}
	if !almostEqual(results.SumMCSProbability, 0.02) {
		t.Fatalf("rare-event sum = %v, want 0.02", results.SumMCSProbability)
	}
	want := 0.019
	if !almostEqual(results.TopEventProbability, want) {
		t.Fatalf("exact top probability = %v, want %v", results.TopEventProbability, want)
	}
}

func TestAnalyzeSkipsProbabilityAndImportanceWhenDisabled(t *testing.T) {
	a := &graph.BasicEvent{ID: "a", Prob: 0.1}
	b := &graph.BasicEvent{ID: "b", Prob: 0.2}
	top := &graph.Gate{
		ID:         "top",
		Connective: graph.And,
		Args: []graph.Arg{
			{Kind: graph.KindBasicEvent, BasicEvent: a},
			{Kind: graph.KindBasicEvent, BasicEvent: b},
		},
	}
	ft := &fakeFaultTree{top: top, basic: map[string]*graph.BasicEvent{"a": a, "b": b}}

	results, err := Analyze(ft, ProbabilityAnalysis(false), ImportanceAnalysis(false))
	if err != nil {
		t.Fatal(err)
	}
	if results.TopEventProbability != 0 {
		t.Fatalf("TopEventProbability = %v, want 0 when probability analysis is disabled", results.TopEventProbability)
	}
	if results.SumMCSProbability != 0 {
		t.Fatalf("SumMCSProbability = %v, want 0 when probability analysis is disabled", results.SumMCSProbability)
	}
	if results.Importance != nil {
		t.Fatalf("Importance = %v, want nil when importance analysis is disabled", results.Importance)
	}
	if len(results.CutSets) != 1 || len(results.CutSets[0]) != 2 {
		t.Fatalf("cut-set enumeration should still run regardless of probability_analysis/importance_analysis, got %v", results.CutSets)
	}
}
