// Package metrics holds the prometheus collectors exposed on the monitoring server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "webhook_validator"

var (
	// ProbesTotal counts finished probes by topic and verdict.
	ProbesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "probes_total",
		Help:      "Number of webhook probes by topic and verdict.",
	}, []string{"topic", "verdict"})

	// ProbeDuration tracks how long probed endpoints took to answer.
	ProbeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "probe_duration_seconds",
		Help:      "Time spent waiting on probed endpoints.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
	}, []string{"verdict"})
)

// ObserveProbe records a finished probe. Probes that never left the service only count.
func ObserveProbe(topic string, verdict string, elapsed time.Duration) {
	if topic == "" {
		topic = "unknown"
	}
	ProbesTotal.WithLabelValues(topic, verdict).Inc()
	if elapsed > 0 {
		ProbeDuration.WithLabelValues(verdict).Observe(elapsed.Seconds())
	}
}
