package bench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports benchmark progress. It owns a private registry so several
// runs in one process do not collide.
type Metrics struct {
	Registry *prometheus.Registry

	ops     *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var metricLabels = []string{"structure", "workload", "op"}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "treedict_bench_ops_total",
			Help: "Operations executed by the benchmark.",
		}, metricLabels),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "treedict_bench_op_seconds",
			Help:    "Latency of individual benchmark operations.",
			Buckets: prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, metricLabels),
	}
	m.Registry.MustRegister(m.ops, m.latency)
	return m
}

// observe records one operation. A nil *Metrics ignores it.
func (m *Metrics) observe(structure, workload, op string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(structure, workload, op).Inc()
	m.latency.WithLabelValues(structure, workload, op).Observe(elapsed.Seconds())
}
