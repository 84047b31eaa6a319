package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// /generate の結果ラベル
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeBlocked      = "blocked"
	OutcomeNoCandidates = "no_candidates"
	OutcomeEmpty        = "empty"
	OutcomeFailed       = "failed"
)

var (
	GenerateRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_gateway_generate_requests_total",
			Help: "Number of /generate requests by outcome",
		},
		[]string{"outcome"},
	)
	GenerateDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genai_gateway_generate_duration_seconds",
			Help:    "Provider round-trip latency for /generate",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 9), // 0.25s..64s
		},
	)
)

func init() {
	prometheus.MustRegister(
		GenerateRequests,
		GenerateDurationSeconds,
	)
}

// Handler は Prometheus のスクレイプ用ハンドラーを返します。
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncGenerate(outcome string) {
	GenerateRequests.WithLabelValues(outcome).Inc()
}

func ObserveGenerateDuration(d time.Duration) {
	GenerateDurationSeconds.Observe(d.Seconds())
}
