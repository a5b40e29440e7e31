// Package metrics exports dispatcher activity as Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts emits, listener invocations and signature mismatches per
// event name. It implements event.Observer.
type Collector struct {
	registry    *prometheus.Registry
	emits       *prometheus.CounterVec
	invocations *prometheus.CounterVec
	mismatches  *prometheus.CounterVec
}

// NewCollector creates a Collector backed by its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		emits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inputbus",
			Name:      "events_emitted_total",
			Help:      "Events delivered to at least one listener.",
		}, []string{"event"}),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inputbus",
			Name:      "listener_invocations_total",
			Help:      "Listener callbacks invoked.",
		}, []string{"event"}),
		mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inputbus",
			Name:      "signature_mismatches_total",
			Help:      "Emits rejected because of a listener signature mismatch.",
		}, []string{"event"}),
	}
	c.registry.MustRegister(c.emits, c.invocations, c.mismatches)
	return c
}

// Emitted implements event.Observer.
func (c *Collector) Emitted(name string, listeners int) {
	c.emits.WithLabelValues(name).Inc()
	c.invocations.WithLabelValues(name).Add(float64(listeners))
}

// Mismatched implements event.Observer.
func (c *Collector) Mismatched(name string) {
	c.mismatches.WithLabelValues(name).Inc()
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
