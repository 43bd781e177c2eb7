package bankline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankline_requests_total",
		Help: "Total requests by prefix and outcome",
	}, []string{"prefix", "outcome"})

	reqLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bankline_request_duration_seconds",
		Help:    "Request handling latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"prefix"})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bankline_sessions_active",
		Help: "Currently open client sessions",
	})
)

// outcomeLabel folds a response into the three-way metric label:
// err for the ERR envelope, ko for a domain KO, ok otherwise.
func outcomeLabel(resp ServerResponse) string {
	switch r := resp.(type) {
	case ErrorResponse:
		return "err"
	case NewCustomerResponse:
		if r.Status == StatusKO {
			return "ko"
		}
	case DeleteResponse:
		if r.Status == StatusKO {
			return "ko"
		}
	}
	return "ok"
}
