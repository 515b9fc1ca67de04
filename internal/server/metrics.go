package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/madlig/mygameon/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the HTTP server.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	scores         prometheus.Histogram
	labels         *prometheus.CounterVec
	normalizedTags *prometheus.CounterVec
}

// NewMetrics registers the server collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mygameon",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "code"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mygameon",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"route", "method"},
		),
		scores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "mygameon",
				Subsystem: "priority",
				Name:      "score",
				Help:      "Distribution of computed priority scores",
				Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
		labels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mygameon",
				Subsystem: "priority",
				Name:      "labels_total",
				Help:      "Total number of computed priorities per label",
			},
			[]string{"label"},
		),
		normalizedTags: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mygameon",
				Subsystem: "tags",
				Name:      "normalized_total",
				Help:      "Total number of tags produced by normalization, split by canonical or pass-through",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpLatency,
		m.scores,
		m.labels,
		m.normalizedTags,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts requests by route template, method and status code.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			m.httpLatency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// ObservePriority records a computed priority.
func (m *Metrics) ObservePriority(result schema.PriorityResult) {
	m.scores.Observe(result.Score)
	m.labels.WithLabelValues(string(result.Label)).Inc()
}

// ObserveTags records the tags of one normalization.
func (m *Metrics) ObserveTags(tags []string) {
	for _, t := range tags {
		kind := "passthrough"
		if schema.IsCanonical(t) {
			kind = "canonical"
		}
		m.normalizedTags.WithLabelValues(kind).Inc()
	}
}
