package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process counters exposed on /metrics
type Metrics struct {
	registry *prometheus.Registry

	EventsAccepted   prometheus.Counter
	EventsRejected   *prometheus.CounterVec
	RecordsPublished prometheus.Counter
	MessagesDropped  prometheus.Counter
	Subscribers      prometheus.Gauge
	Reconnects       prometheus.Counter
}

// NewMetrics creates and registers the wikiwire metric set
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		EventsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikiwire_events_accepted_total",
			Help: "Events that passed every admission gate",
		}),
		EventsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wikiwire_events_rejected_total",
			Help: "Events rejected, labeled by the first failing gate",
		}, []string{"gate"}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikiwire_records_published_total",
			Help: "Records published to the broadcast hub",
		}),
		MessagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikiwire_messages_dropped_total",
			Help: "Per-subscriber messages dropped due to full queues",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wikiwire_subscribers",
			Help: "Currently connected stream subscribers",
		}),
		Reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikiwire_stream_reconnects_total",
			Help: "Reconnect attempts against the upstream feed",
		}),
	}
	reg.MustRegister(m.EventsAccepted, m.EventsRejected, m.RecordsPublished,
		m.MessagesDropped, m.Subscribers, m.Reconnects)
	return m
}

// Handler serves the metric set
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
