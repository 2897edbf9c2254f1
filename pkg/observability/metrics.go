package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/graft"
)

// Metrics holds the Prometheus collectors for bin activity.
type Metrics struct {
	Announces *prometheus.CounterVec   // dispatches per event
	Failures  *prometheus.CounterVec   // failed dispatches per event
	Listeners *prometheus.CounterVec   // listener invocations per event/component
	Attaches  *prometheus.CounterVec   // component attaches per component
	Detaches  *prometheus.CounterVec   // component detaches per component
	Duration  *prometheus.HistogramVec // dispatch duration per event
}

// NewMetrics builds the collectors and registers them with reg. It panics
// when a collector name is already taken, matching prometheus.MustRegister
// semantics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Announces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_announces_total",
				Help: "Total number of event dispatches",
			},
			[]string{"event"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_announce_failures_total",
				Help: "Total number of failed event dispatches",
			},
			[]string{"event"},
		),
		Listeners: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_listener_calls_total",
				Help: "Total number of listener invocations",
			},
			[]string{"event", "component"},
		),
		Attaches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_component_attaches_total",
				Help: "Total number of component attaches",
			},
			[]string{"component"},
		),
		Detaches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_component_detaches_total",
				Help: "Total number of component detaches",
			},
			[]string{"component"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "graft_announce_duration_seconds",
				Help: "Duration of event dispatches",
			},
			[]string{"event"},
		),
	}
	reg.MustRegister(m.Announces, m.Failures, m.Listeners, m.Attaches, m.Detaches, m.Duration)
	return m
}

// Hooks returns bin hooks that record into the collectors.
func (m *Metrics) Hooks() graft.Hooks {
	return graft.Hooks{
		OnAttach: func(e *graft.AttachEvent) {
			m.Attaches.WithLabelValues(e.Component).Inc()
		},
		OnDetach: func(e *graft.AttachEvent) {
			m.Detaches.WithLabelValues(e.Component).Inc()
		},
		OnListener: func(e *graft.ListenerEvent) {
			m.Listeners.WithLabelValues(e.Event, e.Component).Inc()
		},
		OnAnnounce: func(e *graft.AnnounceEvent) {
			m.Announces.WithLabelValues(e.Event).Inc()
			m.Duration.WithLabelValues(e.Event).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.Failures.WithLabelValues(e.Event).Inc()
			}
		},
	}
}
