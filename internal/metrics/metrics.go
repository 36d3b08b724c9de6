// Package metrics defines the Prometheus collectors exported by the docstore server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Save outcomes.
const (
	OutcomeCreated      = "created"
	OutcomeDeduplicated = "deduplicated"
	OutcomeRejected     = "rejected"
)

// Lookup results.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

var (
	Saves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docstore", Name: "saves_total", Help: "Number of save calls by outcome."},
		[]string{"outcome"},
	)
	Searches = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docstore", Name: "searches_total", Help: "Number of search calls."},
	)
	Lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docstore", Name: "lookups_total", Help: "Number of id lookups by result."},
		[]string{"result"},
	)
	Documents = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "docstore", Name: "documents", Help: "Number of documents currently stored."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Saves)
	reg.MustRegister(Searches)
	reg.MustRegister(Lookups)
	reg.MustRegister(Documents)
}
