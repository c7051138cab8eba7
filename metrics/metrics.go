package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	queriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "txnquery_queries_total",
		Help: "Queries processed, by answering mode",
	}, []string{"mode"})

	cacheEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "txnquery_cache_events_total",
		Help: "Query cache lookups on paginated requests (hit/miss)",
	}, []string{"event"})

	collaboratorLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "txnquery_collaborator_latency_ms",
		Help:    "Latency of external collaborator calls in milliseconds",
		Buckets: []float64{25, 50, 100, 250, 500, 1000, 2000, 5000, 10000, 20000},
	}, []string{"collaborator"})

	matchingRecords = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "txnquery_matching_records",
		Help:    "Matching record count per answered query",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 250, 500, 1000},
	})

	ingestedRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "txnquery_ingested_records",
		Help: "Size of the currently ingested dataset",
	})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(queriesTotal, cacheEvents, collaboratorLatency, matchingRecords, ingestedRecords)
	})
}

// IncQuery counts an answered query by mode.
func IncQuery(mode string) {
	ensureRegistered()
	queriesTotal.WithLabelValues(mode).Inc()
}

// IncCacheEvent records a hit or miss on a page>1 lookup.
func IncCacheEvent(hit bool) {
	ensureRegistered()
	event := "miss"
	if hit {
		event = "hit"
	}
	cacheEvents.WithLabelValues(event).Inc()
}

// ObserveCollaborator records the latency of a generator or index call.
func ObserveCollaborator(name string, start time.Time) {
	ensureRegistered()
	collaboratorLatency.WithLabelValues(name).Observe(float64(time.Since(start).Milliseconds()))
}

// ObserveMatches records how many records a query matched.
func ObserveMatches(n int) {
	ensureRegistered()
	matchingRecords.Observe(float64(n))
}

// SetIngestedRecords tracks the dataset size.
func SetIngestedRecords(n int) {
	ensureRegistered()
	ingestedRecords.Set(float64(n))
}

// Collectors exposes all collectors for registration with a custom registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		queriesTotal, cacheEvents, collaboratorLatency, matchingRecords, ingestedRecords,
	}
}
