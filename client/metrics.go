package client

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "babysteps_client",
			Name:      "requests_total",
			Help:      "HTTP responses received from the backend.",
		},
		[]string{"code", "method"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "babysteps_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of backend requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	sessionInvalidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "babysteps_client",
			Name:      "session_invalidations_total",
			Help:      "Sessions cleared because the backend answered 401.",
		},
	)
)

func instrumentTransport(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(requestsTotal,
		promhttp.InstrumentRoundTripperDuration(requestDuration, next))
}
