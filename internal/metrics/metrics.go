package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency, by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_resolutions_total",
			Help: "Session resolution attempts, by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)
)

func Init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
	prometheus.MustRegister(SessionResolutions)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveResolution records one resolver outcome.
func ObserveResolution(strategy string, authenticated bool) {
	outcome := "anonymous"
	if authenticated {
		outcome = "authenticated"
	}
	SessionResolutions.WithLabelValues(strategy, outcome).Inc()
}
