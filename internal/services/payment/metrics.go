package payment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTransition(string, string, string) {}

// PrometheusCollector exports transition counts. Construct it once per
// process; counters register on the default registry.
type PrometheusCollector struct {
	transitions *prometheus.CounterVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "linkpay_payment_transitions_total",
			Help: "Payment status transitions by from/to status and result.",
		}, []string{"from", "to", "result"}),
	}
}

func (c *PrometheusCollector) RecordTransition(from, to, result string) {
	c.transitions.WithLabelValues(from, to, result).Inc()
}
