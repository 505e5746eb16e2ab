package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dash_queries_total",
			Help: "Read queries by operation and outcome",
		},
		[]string{"op", "outcome"}, // revenue|latest|summary|invoices_page|... , ok|error
	)

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dash_invoice_mutations_total",
			Help: "Invoice mutations by action and outcome",
		},
		[]string{"action", "outcome"}, // create|update|delete , ok|rejected|error
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		QueriesTotal,
		MutationsTotal,
	)
}
