// Package metrics registers the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kudumbam",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kudumbam",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	relationComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kudumbam",
		Subsystem: "kinship",
		Name:      "computations_total",
		Help:      "Relation label computations by outcome.",
	}, []string{"outcome"})

	relationLabelled = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "kudumbam",
		Subsystem: "kinship",
		Name:      "labelled_persons",
		Help:      "Persons labelled per computation.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	relationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "kudumbam",
		Subsystem: "kinship",
		Name:      "compute_duration_seconds",
		Help:      "Time spent loading a family and labelling it.",
		Buckets:   prometheus.DefBuckets,
	})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kudumbam",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter.",
	})
)

// ObserveHTTP records one finished HTTP request.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveRelations records one relation computation. labelled is ignored on failure.
func ObserveRelations(labelled int, elapsed time.Duration, err error) {
	if err != nil {
		relationComputations.WithLabelValues("error").Inc()
		return
	}
	relationComputations.WithLabelValues("ok").Inc()
	relationLabelled.Observe(float64(labelled))
	relationDuration.Observe(elapsed.Seconds())
}

// IncRateLimited counts a request rejected by the rate limiter.
func IncRateLimited() {
	rateLimited.Inc()
}
