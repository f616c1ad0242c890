package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	apierrors "github.com/yukikurage/team-task-api/internal/errors"
)

const namespace = "teamtask"

// Metrics owns the Prometheus registry of the API.
type Metrics struct {
	registry        *prometheus.Registry
	procedureCalls  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the registry with the Go and process collectors plus the API's own metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		procedureCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "procedure_calls_total",
			Help:      "Domain procedure calls by procedure and outcome.",
		}, []string{"procedure", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	registry.MustRegister(m.procedureCalls, m.requestDuration)

	return m
}

// ObserveProcedure counts one call of a domain procedure. The outcome is
// "ok", the domain error kind, or "error" for infrastructure failures.
// A nil Metrics records nothing.
func (m *Metrics) ObserveProcedure(procedure string, err error) {
	if m == nil {
		return
	}
	m.procedureCalls.WithLabelValues(procedure, Outcome(err)).Inc()
}

// Outcome maps an operation result onto a metric label.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind, ok := apierrors.KindOf(err); ok {
		return string(kind)
	}
	return "error"
}

// Middleware records request latency keyed by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
