// Package metrics exposes prometheus instruments for the billing engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// BillingMetrics counts billing runs and their outcomes. A nil receiver is
// valid and records nothing, so callers never have to guard.
type BillingMetrics struct {
	runs        prometheus.Counter
	invoices    prometheus.Counter
	pointErrors *prometheus.CounterVec
	runDuration prometheus.Histogram
}

func NewBillingMetrics(reg prometheus.Registerer) *BillingMetrics {
	m := &BillingMetrics{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gasbilling_runs_total",
			Help: "Billing runs started.",
		}),
		invoices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gasbilling_invoices_created_total",
			Help: "Invoices created by billing runs.",
		}),
		pointErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gasbilling_point_errors_total",
			Help: "Per-supply-point billing errors by reason.",
		}, []string{"reason"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gasbilling_run_duration_seconds",
			Help:    "Duration of billing runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.runs, m.invoices, m.pointErrors, m.runDuration)
	return m
}

func (m *BillingMetrics) IncRun() {
	if m == nil {
		return
	}
	m.runs.Inc()
}

func (m *BillingMetrics) IncInvoice() {
	if m == nil {
		return
	}
	m.invoices.Inc()
}

func (m *BillingMetrics) IncPointError(reason string) {
	if m == nil {
		return
	}
	m.pointErrors.WithLabelValues(reason).Inc()
}

func (m *BillingMetrics) ObserveRun(d time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.Observe(d.Seconds())
}

// NewRegistry provides the process-wide prometheus registry.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

// Module wires the registry and billing instruments.
var Module = fx.Module("observability.metrics",
	fx.Provide(NewRegistry),
	fx.Provide(func(reg *prometheus.Registry) prometheus.Registerer { return reg }),
	fx.Provide(NewBillingMetrics),
)
