package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// matchWrites counts ledger writes by operation and result
	matchWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_match_writes_total",
		Help: "Total match writes by operation and result",
	}, []string{"operation", "result"})

	// aggregateEffects counts match effects applied to or reverted from totals
	aggregateEffects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_aggregate_effects_total",
		Help: "Total aggregate effects by direction",
	}, []string{"direction"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_query_duration_seconds",
		Help:    "Aggregation query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"query"})
)

func recordWrite(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	matchWrites.WithLabelValues(operation, result).Inc()
}

// observeQuery is deferred at the top of a query: defer observeQuery("leaderboard", time.Now()).
func observeQuery(query string, start time.Time) {
	queryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}
