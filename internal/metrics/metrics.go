// Package metrics exposes prometheus counters for the pricing surfaces.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics carries the service's prometheus collectors.
type Metrics struct {
	Registry *prometheus.Registry

	PricingCalculations *prometheus.CounterVec
	Checkouts           prometheus.Counter
}

// New registers the collectors on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		PricingCalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beezio_pricing_calculations_total",
			Help: "Pricing breakdowns computed, by direction.",
		}, []string{"direction"}),
		Checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beezio_checkouts_total",
			Help: "Orders created through checkout.",
		}),
	}

	reg.MustRegister(m.PricingCalculations, m.Checkouts)
	return m
}

// ObserveForward records one forward calculation.
func (m *Metrics) ObserveForward() {
	m.PricingCalculations.WithLabelValues("forward").Inc()
}

// ObserveReverse records one reverse solve.
func (m *Metrics) ObserveReverse() {
	m.PricingCalculations.WithLabelValues("reverse").Inc()
}

// Module wires the prometheus registry and collectors.
var Module = fx.Module("metrics",
	fx.Provide(New),
)
