// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package faulttree

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	analysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faulttree",
		Name:      "analyses_total",
		Help:      "Number of Analyze runs, partitioned by outcome.",
	}, []string{"outcome"})

	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "faulttree",
		Name:      "analysis_duration_seconds",
		Help:      "Wall-clock duration of a complete Analyze run.",
		Buckets:   prometheus.DefBuckets,
	})

	bddNodesLive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "faulttree",
		Name:      "bdd_nodes_live",
		Help:      "Number of live nodes in the BDD arena at the end of the last Analyze run.",
	})

	cutSetsDiscarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "faulttree",
		Name:      "cut_sets_discarded_total",
		Help:      "Cut sets dropped by the cut_off probability threshold (sets pruned by limit_order are not counted).",
	})
)

func init() {
	prometheus.MustRegister(analysesTotal, analysisDuration, bddNodesLive, cutSetsDiscarded)
}

// recordAnalysis reports one Analyze run's outcome to the package's
// Prometheus metrics.
func recordAnalysis(start time.Time, nodes int, results *Results, err error) {
	analysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		analysesTotal.WithLabelValues("error").Inc()
		return
	}
	analysesTotal.WithLabelValues("ok").Inc()
	bddNodesLive.Set(float64(nodes))
	cutSetsDiscarded.Add(float64(results.DiscardedCutSets))
}
