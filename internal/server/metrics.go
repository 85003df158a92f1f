package server

import (
	"github.com/etnz/fintrack"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered on a private registry so that several servers can
// live in one process.
type metrics struct {
	registry     *prometheus.Registry
	balance      *prometheus.GaugeVec
	expenses     prometheus.Gauge
	transactions prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &metrics{
		registry: reg,
		balance: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fintrack",
			Name:      "balance",
			Help:      "Current balance per money source.",
		}, []string{"source"}),
		expenses: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "fintrack",
			Name:      "expenses_total",
			Help:      "Sum of all recorded expenses.",
		}),
		transactions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "fintrack",
			Name:      "transactions",
			Help:      "Number of transactions in the ledger.",
		}),
	}
}

func (m *metrics) observe(b *fintrack.Book) {
	a := b.Aggregate()
	for _, src := range fintrack.Sources() {
		m.balance.WithLabelValues(string(src)).Set(a.Registry.Get(src).Decimal().InexactFloat64())
	}
	m.expenses.Set(a.TotalExpenses.Decimal().InexactFloat64())
	m.transactions.Set(float64(b.Ledger().Len()))
}
