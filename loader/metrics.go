package loader

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for the trades counter.
const (
	OutcomeDecoded = "decoded"
	OutcomeFailed  = "failed"
	OutcomeUnknown = "unknown"
)

// Metrics counts decoded and rejected trades. A nil *Metrics records nothing.
type Metrics struct {
	rows *prometheus.CounterVec
}

// NewMetrics creates the loader counters and registers them with reg, if not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tradelib",
			Subsystem: "loader",
			Name:      "rows_total",
			Help:      "Trades read from CSV files, by plugin and outcome.",
		}, []string{"plugin", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.rows)
	}
	return m
}

// Rows exposes the counter for tests and custom registries.
func (m *Metrics) Rows() *prometheus.CounterVec { return m.rows }

func (m *Metrics) observe(plugin, outcome string) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(plugin, outcome).Inc()
}
