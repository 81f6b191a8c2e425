package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		asksTotal,
		ordersCompleted,
	)
}

var (
	asksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_asks_total",
			Help: "Count of /ask requests by outcome (answered, rejected, error).",
		},
		[]string{"outcome"},
	)

	ordersCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dialogue_orders_completed_total",
			Help: "Count of order flows completed end to end.",
		},
	)
)

func IncAsk(outcome string) {
	asksTotal.WithLabelValues(outcome).Inc()
}

func IncOrderCompleted() {
	ordersCompleted.Inc()
}
