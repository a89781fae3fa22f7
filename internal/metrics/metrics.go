// Package metrics exposes Prometheus counters for state changes and saves.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vbonduro/marineit/internal/state"
)

const namespace = "marineit"

type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	saves     *prometheus.CounterVec
	records   *prometheus.GaugeVec
}

// New returns Metrics registered on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Committed state changes by collection and kind.",
		}, []string{"collection", "kind"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_saves_total",
			Help:      "Snapshot saves by result.",
		}, []string{"result"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records currently held per collection.",
		}, []string{"collection"}),
	}
	m.registry.MustRegister(
		m.mutations,
		m.saves,
		m.records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records a committed change. It has the signature of a
// state.Store subscriber.
func (m *Metrics) Observe(c state.Change) {
	m.mutations.WithLabelValues(string(c.Collection), string(c.Kind)).Inc()
	m.records.WithLabelValues(string(state.CollectionWorkLogs)).Set(float64(len(c.Snapshot.WorkLogs)))
	m.records.WithLabelValues(string(state.CollectionTickets)).Set(float64(len(c.Snapshot.Tickets)))
	m.records.WithLabelValues(string(state.CollectionAssets)).Set(float64(len(c.Snapshot.Assets)))
	m.records.WithLabelValues(string(state.CollectionInspections)).Set(float64(len(c.Snapshot.ShipInspections)))
}

func (m *Metrics) SaveResult(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.saves.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
