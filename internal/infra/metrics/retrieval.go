package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		retrievalLatencyMs,
		retrievalPassages,
	)
}

var (
	retrievalLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retrieval_latency_ms",
			Help:    "Context retrieval latency distribution in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"success"},
	)

	retrievalPassages = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrieval_passages",
			Help:    "Number of passages returned per retrieval.",
			Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12},
		},
	)
)

func ObserveRetrieval(elapsed time.Duration, passages int, success bool) {
	retrievalLatencyMs.WithLabelValues(strconv.FormatBool(success)).
		Observe(float64(elapsed.Milliseconds()))
	retrievalPassages.Observe(float64(passages))
}
