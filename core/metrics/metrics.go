package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Scan outcomes recorded by ObserveScan.
const (
	ScanFound          = "found"
	ScanAlreadyScanned = "already_scanned"
	ScanUnknownBarcode = "unknown_barcode"
	ScanError          = "error"
)

// Metrics collects HTTP and audit metrics in a private Prometheus registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	reqTotal   *prometheus.CounterVec
	reqLatency *prometheus.HistogramVec
	scans      *prometheus.CounterVec
	audits     *prometheus.CounterVec
	registry   *prometheus.Registry
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	scans := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_audit_scans_total",
			Help: "Barcode scans by outcome",
		},
		[]string{"outcome"},
	)

	audits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_audits_total",
			Help: "Audit lifecycle transitions",
		},
		[]string{"event"},
	)

	registry.MustRegister(reqTotal, reqLatency, scans, audits)

	return &Metrics{
		reqTotal:   reqTotal,
		reqLatency: reqLatency,
		scans:      scans,
		audits:     audits,
		registry:   registry,
	}
}

// Middleware returns a Fiber middleware recording request count and latency.
// The path label is the matched route pattern to keep cardinality bounded.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.reqTotal.WithLabelValues(labels...).Inc()
		m.reqLatency.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveScan counts one barcode scan with the given outcome.
func (m *Metrics) ObserveScan(outcome string) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(outcome).Inc()
}

// ObserveAudit counts an audit lifecycle event (created, completed, deleted).
func (m *Metrics) ObserveAudit(event string) {
	if m == nil {
		return
	}
	m.audits.WithLabelValues(event).Inc()
}
