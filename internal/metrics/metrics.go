package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus collectors for the chat server.
// A nil *Metrics is valid and turns every method into a no-op.
type Metrics struct {
	registry *prometheus.Registry

	connections   prometheus.Gauge
	messagesTotal prometheus.Counter
	droppedEvents prometheus.Counter
	storeFailures prometheus.Counter
}

// New builds a metrics set backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parlor_connections",
			Help: "Number of currently registered websocket channels.",
		}),
		messagesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parlor_messages_total",
			Help: "Total chat messages broadcast.",
		}),
		droppedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parlor_dropped_events_total",
			Help: "Events dropped because a client channel was full.",
		}),
		storeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parlor_store_failures_total",
			Help: "Message persistence failures (broadcast proceeds regardless).",
		}),
	}
	registry.MustRegister(m.connections, m.messagesTotal, m.droppedEvents, m.storeFailures)
	return m
}

// Handler exposes the registry for a /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ConnOpened records a newly registered channel.
func (m *Metrics) ConnOpened() {
	if m != nil {
		m.connections.Inc()
	}
}

// ConnClosed records an unregistered channel.
func (m *Metrics) ConnClosed() {
	if m != nil {
		m.connections.Dec()
	}
}

// MessageBroadcast records one fan-out of a chat message.
func (m *Metrics) MessageBroadcast() {
	if m != nil {
		m.messagesTotal.Inc()
	}
}

// EventDropped records an event lost to a slow consumer.
func (m *Metrics) EventDropped() {
	if m != nil {
		m.droppedEvents.Inc()
	}
}

// StoreFailure records a failed append.
func (m *Metrics) StoreFailure() {
	if m != nil {
		m.storeFailures.Inc()
	}
}
