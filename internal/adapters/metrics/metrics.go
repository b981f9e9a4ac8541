// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestDuration observes handler latency by route and method.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fringe",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	// HTTPRequestsTotal counts requests by route, method and status class.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fringe",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	// DBQueryDuration observes database query latency by operation.
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fringe",
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Database query latency by operation (exec/query/query_row).",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"op"})

	// OutboxProcessed counts outbox entries by delivery outcome.
	OutboxProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fringe",
		Subsystem: "outbox",
		Name:      "processed_total",
		Help:      "Outbox entries processed by outcome (delivered/failed).",
	}, []string{"outcome"})

	// CacheRequests counts response cache lookups by result.
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fringe",
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Response cache lookups by result (hit/miss).",
	}, []string{"result"})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
