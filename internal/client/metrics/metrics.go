package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the client lifecycle.
type Metrics struct {
	ClientsCreated prometheus.Counter
	ClientsUpdated prometheus.Counter
	ClientsDeleted prometheus.Counter
}

// New creates and registers the client lifecycle metrics. Call once per
// process; tests pass a nil *Metrics instead.
func New() *Metrics {
	return &Metrics{
		ClientsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clientele_clients_created_total",
			Help: "Total number of client records created.",
		}),
		ClientsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clientele_clients_updated_total",
			Help: "Total number of client records updated.",
		}),
		ClientsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clientele_clients_deleted_total",
			Help: "Total number of client records deleted.",
		}),
	}
}

func (m *Metrics) IncrementCreated() {
	if m != nil {
		m.ClientsCreated.Inc()
	}
}

func (m *Metrics) IncrementUpdated() {
	if m != nil {
		m.ClientsUpdated.Inc()
	}
}

func (m *Metrics) IncrementDeleted() {
	if m != nil {
		m.ClientsDeleted.Inc()
	}
}
