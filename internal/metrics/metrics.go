// Package metrics exposes gate lifecycle counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cerebro"

// Metrics implements cerebro.Observer.
type Metrics struct {
	registry     *prometheus.Registry
	mounts       *prometheus.CounterVec
	loads        *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
}

// New creates a Metrics with its own registry, so tests and multiple
// servers in one process never collide on registration.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_mounts_total",
			Help:      "Gate instances that reached the interactive state.",
		}, []string{"gate"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feature_loads_total",
			Help:      "Feature subtree loads, by outcome.",
		}, []string{"gate", "result"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feature_load_duration_seconds",
			Help:      "Time spent loading a feature subtree.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"gate"}),
	}

	m.registry.MustRegister(
		m.mounts,
		m.loads,
		m.loadDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// GateMounted counts an instance transition.
func (m *Metrics) GateMounted(gate string) {
	m.mounts.WithLabelValues(gate).Inc()
}

// ChildLoaded records the outcome and duration of a feature load.
func (m *Metrics) ChildLoaded(gate string, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.loads.WithLabelValues(gate, result).Inc()
	m.loadDuration.WithLabelValues(gate).Observe(took.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
