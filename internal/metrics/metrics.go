// Package metrics defines the Prometheus instruments exported by the roster daemon.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roster"

// unmatchedRoute labels requests that did not hit a registered route,
// so arbitrary paths cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

type Metrics struct {
	reg prometheus.Registerer

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	OutcomesTotal   *prometheus.CounterVec
}

// New registers the roster instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		reg: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		OutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outcomes_total",
				Help:      "Handler outcomes by kind",
			},
			[]string{"kind"},
		),
	}
}

// WatchUsers exports the current roster size, read through count on every scrape.
func (m *Metrics) WatchUsers(count func() int) {
	if m == nil {
		return
	}
	promauto.With(m.reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "users",
			Help:      "Number of users currently stored",
		},
		func() float64 { return float64(count()) },
	)
}

// ObserveOutcome counts one rendered outcome.
func (m *Metrics) ObserveOutcome(kind string) {
	if m == nil {
		return
	}
	m.OutcomesTotal.WithLabelValues(kind).Inc()
}

// Middleware records request count and latency.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method
		m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
