// Package metrics holds the Prometheus collectors for the ledger service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	actionDuration  *prometheus.HistogramVec
	actionsTotal    *prometheus.CounterVec
	queueDepth      prometheus.Gauge
	refreshDuration *prometheus.HistogramVec
	refreshesTotal  *prometheus.CounterVec
	backendRequests *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		actionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_action_duration_seconds",
				Help:    "Time spent performing an operator action, storage commit included.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		actionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_actions_total",
				Help: "Operator actions by outcome. Outcome is ok or the ledger error kind.",
			},
			[]string{"action", "outcome"},
		),
		queueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_operator_queue_depth",
				Help: "Actions waiting in the operator queue.",
			},
		),
		refreshDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_session_refresh_duration_seconds",
				Help:    "Duration of session view refreshes.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"trigger"},
		),
		refreshesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_session_refreshes_total",
				Help: "Session refreshes by outcome: published, superseded or failed.",
			},
			[]string{"trigger", "outcome"},
		),
		backendRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_backend_requests_total",
				Help: "HTTP backend client requests by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveAction(action, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.actionDuration.WithLabelValues(action).Observe(d.Seconds())
	m.actionsTotal.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

func (m *Metrics) ObserveRefresh(trigger, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.refreshDuration.WithLabelValues(trigger).Observe(d.Seconds())
	m.refreshesTotal.WithLabelValues(trigger, outcome).Inc()
}

func (m *Metrics) IncrBackendRequest(operation, outcome string) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(operation, outcome).Inc()
}
