package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "escrow"

// Metrics exposes audit reports as Prometheus gauges. Amounts are in GAS.
type Metrics struct {
	height      prometheus.Gauge
	deposits    prometheus.Gauge
	amounts     *prometheus.GaugeVec
	violations  *prometheus.GaugeVec
	auditErrors prometheus.Counter
}

// NewMetrics registers audit metrics in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		height: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audit_height",
			Help:      "Block height of the last audited state",
		}),
		deposits: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "deposits",
			Help:      "Number of deposits",
		}),
		amounts: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "amount_gas",
			Help:      "Escrow totals in GAS",
		}, []string{"kind"}),
		violations: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "violations",
			Help:      "Number of accounting violations found by the last audit",
		}, []string{"kind"}),
		auditErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_errors_total",
			Help:      "Number of failed audit runs",
		}),
	}
}

// Observe sets gauges from the report.
func (m *Metrics) Observe(r *Report) {
	m.height.Set(float64(r.Height))
	m.deposits.Set(float64(r.Deposits))

	m.amounts.WithLabelValues("deposited").Set(toFloat(r.TotalDeposited))
	m.amounts.WithLabelValues("claimed").Set(toFloat(r.TotalClaimed))
	m.amounts.WithLabelValues("outstanding").Set(toFloat(r.Outstanding))
	m.amounts.WithLabelValues("balance").Set(toFloat(r.Balance))
	m.amounts.WithLabelValues("surplus").Set(toFloat(r.Surplus))
	m.amounts.WithLabelValues("claimable").Set(toFloat(r.Claimable))
	m.amounts.WithLabelValues("unvestable").Set(toFloat(r.Unvestable))

	m.violations.Reset()
	for _, v := range r.Violations {
		m.violations.WithLabelValues(v.Kind).Inc()
	}
}

// Failed counts an audit run which could not be completed.
func (m *Metrics) Failed() {
	m.auditErrors.Inc()
}
