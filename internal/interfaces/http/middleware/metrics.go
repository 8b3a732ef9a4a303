// Package middleware provides HTTP middleware for the storefront API.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics collects per-request Prometheus metrics
type HTTPMetrics struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
}

// NewHTTPMetrics creates the metric instruments on a fresh registry
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	registry := prometheus.NewRegistry()

	constLabels := prometheus.Labels{"service": serviceName}

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "http_server_request_total",
		Help:        "Total number of HTTP requests",
		ConstLabels: constLabels,
	}, []string{"method", "route", "status_code"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Help:        "HTTP request latency distribution in seconds",
		ConstLabels: constLabels,
		Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "route"})

	activeRequests := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "http_server_active_requests",
		Help:        "Number of currently active HTTP requests",
		ConstLabels: constLabels,
	})

	registry.MustRegister(requestTotal, requestDuration, activeRequests)

	return &HTTPMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		activeRequests:  activeRequests,
	}
}

// Middleware records request count, latency and in-flight gauge per request.
// Routes are labeled by their gin pattern, not the raw path, to keep
// cardinality bounded.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.activeRequests.Inc()
		c.Next()
		m.activeRequests.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		m.requestTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		m.requestDuration.WithLabelValues(
			c.Request.Method,
			route,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry for the /metrics endpoint
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
