package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		aiCallsLatencyMs,
	)
}

var aiCallsLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ai_calls_latency_ms",
		Help:    "AI call latency distribution in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
	},
	[]string{"provider", "success"},
)

func ObserveAICall(provider string, elapsed time.Duration, success bool) {
	aiCallsLatencyMs.WithLabelValues(provider, strconv.FormatBool(success)).
		Observe(float64(elapsed.Milliseconds()))
}
