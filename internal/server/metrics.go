package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/abhisek/venusquiz/internal/session"
)

// metrics is the server's Prometheus collector set. Each Server owns its
// own registry so several servers can live in one process.
type metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	transitions *prometheus.CounterVec
	sessions    prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "venusquiz_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "venusquiz_http_request_duration_seconds",
				Help:    "Time spent serving HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "venusquiz_transitions_total",
				Help: "Total number of applied session events",
			},
			[]string{"event", "to"},
		),
		sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "venusquiz_sessions_current",
				Help: "Current number of open sessions",
			},
		),
	}
	m.registry.MustRegister(m.requests, m.latency, m.transitions, m.sessions)
	return m
}

// middleware counts and times every request by its route pattern.
func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *metrics) observeTransition(t session.Transition) {
	m.transitions.WithLabelValues(t.Event.EventName(), t.To.Step().String()).Inc()
}
