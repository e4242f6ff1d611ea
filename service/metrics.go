package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "pim_client"

// Metrics holds the collectors updated by Client and Instance.
type Metrics struct {
	InstancesCreated  prometheus.Counter
	InstancesDeleted  prometheus.Counter
	ReadinessPolls    prometheus.Counter
	ReadinessTimeouts prometheus.Counter
	ReadinessWait     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. A nil reg leaves them unregistered.
// Registering twice on the same registerer panics, as with promauto.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		InstancesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "instances_created_total",
			Help:      "Total number of product instances created through the client",
		}),
		InstancesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "instances_deleted_total",
			Help:      "Total number of product instances deleted through the client",
		}),
		ReadinessPolls: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "readiness_polls_total",
			Help:      "Total number of instance status requests",
		}),
		ReadinessTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "readiness_timeouts_total",
			Help:      "Total number of readiness waits that gave up",
		}),
		ReadinessWait: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "readiness_wait_seconds",
			Help:      "Time spent waiting for instances to become ready",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}
}
