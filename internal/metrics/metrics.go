// Package metrics exposes Prometheus counters for the intake pipeline and
// the HTTP server.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/royaldevs/backend/pkg/relay"
)

// Submission outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	submissions   *prometheus.CounterVec
	notifyFailed  prometheus.Counter
	pageViews     prometheus.Counter
	httpDurations *prometheus.HistogramVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by outcome.",
		}, []string{"outcome"}),
		notifyFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "contact_notifications_failed_total",
			Help: "Contact notifications that could not be delivered.",
		}),
		pageViews: f.NewCounter(prometheus.CounterOpts{
			Name: "page_views_total",
			Help: "Page views recorded.",
		}),
		httpDurations: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Submission counts one contact form submission.
func (m *Metrics) Submission(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

// PageView counts one recorded page view.
func (m *Metrics) PageView() {
	m.pageViews.Inc()
}

// CountNotifier wraps n so that failed deliveries are counted.
func (m *Metrics) CountNotifier(n relay.Notifier) relay.Notifier {
	return &countingNotifier{next: n, failed: m.notifyFailed}
}

type countingNotifier struct {
	next   relay.Notifier
	failed prometheus.Counter
}

func (c *countingNotifier) Notify(ctx context.Context, n relay.Notification) error {
	err := c.next.Notify(ctx, n)
	if err != nil {
		c.failed.Inc()
	}
	return err
}

// Instrument records request latency. It must wrap the ServeMux directly so
// that the matched route pattern is visible after the call.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.httpDurations.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
