package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes application-level prometheus instruments.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	ordersCreated      prometheus.Counter
	statusTransitions  *prometheus.CounterVec
	paymentsRegistered prometheus.Counter
	paymentsVoided     prometheus.Counter
}

// New builds the metrics registry with all instruments registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spi_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spi_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spi_purchase_orders_created_total",
			Help: "Purchase orders created.",
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spi_purchase_order_transitions_total",
			Help: "Purchase order status transitions by target status.",
		}, []string{"status"}),
		paymentsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spi_payments_registered_total",
			Help: "Payments registered against purchase orders.",
		}),
		paymentsVoided: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spi_payments_voided_total",
			Help: "Payments voided.",
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.ordersCreated,
		m.statusTransitions,
		m.paymentsRegistered,
		m.paymentsVoided,
	)

	return m
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// GinMiddleware records request counters and latency.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) RecordOrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *Metrics) RecordStatusTransition(status string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordPaymentRegistered() {
	if m == nil {
		return
	}
	m.paymentsRegistered.Inc()
}

func (m *Metrics) RecordPaymentVoided() {
	if m == nil {
		return
	}
	m.paymentsVoided.Inc()
}
