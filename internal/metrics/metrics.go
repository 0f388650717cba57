// Package metrics holds Prometheus instruments that are used across the
// API.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ppghub_http_requests_total",
			Help: "HTTP requests served, by method, route pattern, and status class.",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ppghub_http_request_duration_seconds",
			Help:    "Request latency, by route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	ConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ppghub_store_conflicts_total",
			Help: "Writes rejected by a database constraint, by entity.",
		},
		[]string{"entity"},
	)

	NotFoundTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ppghub_store_not_found_total",
			Help: "Lookups that matched no row.",
		})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ConflictsTotal,
		NotFoundTotal,
	)
}

// ObserveRequest records one served request.  Status is collapsed to its
// class ("2xx", "4xx", ...) to keep cardinality bounded.
func ObserveRequest(method, route string, status int, seconds float64) {
	class := strconv.Itoa(status/100) + "xx"
	RequestsTotal.WithLabelValues(method, route, class).Inc()
	RequestDuration.WithLabelValues(route).Observe(seconds)
}
