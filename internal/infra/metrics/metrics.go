// Package metrics exposes Prometheus instrumentation for the HTTP server and
// the approval workflow.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors and their registry.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	requestsTotal     *prometheus.CounterVec
	approvalDecisions *prometheus.CounterVec
	pendingRequests   *prometheus.GaugeVec
}

// New creates a registry with process, Go runtime and application collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		approvalDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "approval_decisions_total",
			Help: "Approval decisions by entity kind and outcome.",
		}, []string{"entity_kind", "decision"}),
		pendingRequests: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "approval_pending_requests",
			Help: "Pending approval requests by entity kind, sampled on list queries.",
		}, []string{"entity_kind"}),
	}

	registry.MustRegister(m.requestDuration, m.requestsTotal, m.approvalDecisions, m.pendingRequests)

	return m
}

// Handler returns the scrape endpoint handler.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latencies per route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			labels := []string{c.Request().Method, c.Path(), strconv.Itoa(status)}
			m.requestsTotal.WithLabelValues(labels...).Inc()
			m.requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// ObserveDecision counts one approval decision.
func (m *Metrics) ObserveDecision(entityKind, decision string) {
	m.approvalDecisions.WithLabelValues(entityKind, decision).Inc()
}

// SetPendingRequests records the current pending queue depth for a kind.
func (m *Metrics) SetPendingRequests(entityKind string, count int) {
	m.pendingRequests.WithLabelValues(entityKind).Set(float64(count))
}
