package enrichment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts country lookups by outcome: hit, missing, error.
type Metrics struct {
	Lookups *prometheus.CounterVec
}

// NewMetrics creates and registers the lookup metrics. Call once per
// process; tests pass a nil *Metrics instead.
func NewMetrics() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clientele_country_lookups_total",
			Help: "Country demonym lookups by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveLookup(outcome string) {
	if m != nil {
		m.Lookups.WithLabelValues(outcome).Inc()
	}
}
