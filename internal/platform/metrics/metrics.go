package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/SscSPs/ledger_posting_app/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Posting engine
	PostingsTotal  *prometheus.CounterVec
	UnpostRuns     *prometheus.CounterVec
	UnpostedTotal  prometheus.Counter
	EngineDuration *prometheus.HistogramVec
	EntriesSaved   *prometheus.CounterVec

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PostingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_post_attempts_total",
			Help: "Ledger posting attempts by outcome",
		}, []string{"result"}),

		UnpostRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_unpost_runs_total",
			Help: "Period unposting runs by outcome",
		}, []string{"result"}),

		UnpostedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_postings_unposted_total",
			Help: "Postings reversed by period unposting",
		}),

		EngineDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_engine_duration_seconds",
			Help:    "Duration of posting engine operations, including the database transaction",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		EntriesSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_entries_saved_total",
			Help: "Journal entries written to draft ledgers",
		}, []string{"op"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Result classifies an engine error into a low-cardinality label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, apperrors.ErrConsistency):
		return "consistency"
	default:
		return "error"
	}
}

// ObservePost records one posting attempt.
func (m *Metrics) ObservePost(err error, took time.Duration) {
	if m == nil {
		return
	}
	m.PostingsTotal.WithLabelValues(Result(err)).Inc()
	m.EngineDuration.WithLabelValues("post").Observe(took.Seconds())
}

// ObserveUnpost records one period unposting run and how many postings it reversed.
func (m *Metrics) ObserveUnpost(err error, reversed int, took time.Duration) {
	if m == nil {
		return
	}
	m.UnpostRuns.WithLabelValues(Result(err)).Inc()
	if err == nil {
		m.UnpostedTotal.Add(float64(reversed))
	}
	m.EngineDuration.WithLabelValues("unpost").Observe(took.Seconds())
}

// ObserveEntries records entry writes. op is one of create, update, delete.
func (m *Metrics) ObserveEntries(op string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.EntriesSaved.WithLabelValues(op).Add(float64(n))
}

// GinMiddleware records request counts and latency per route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
