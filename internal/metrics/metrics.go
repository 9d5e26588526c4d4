package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "glbiashara"

// Upload outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeRejected        = "rejected"
	OutcomeStorageError    = "storage_error"
	OutcomeInternalError   = "internal_error"
	OutcomeUnauthenticated = "unauthenticated"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry        prometheus.Gatherer
	uploads         *prometheus.CounterVec
	storageDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: reg,
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Upload requests by media kind and outcome.",
		}, []string{"kind", "outcome"}),
		storageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "storage_duration_seconds",
			Help:      "Latency of storage dispatch calls.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"provider", "kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}

	for _, c := range []prometheus.Collector{m.uploads, m.storageDuration, m.httpRequests} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Upload counts one upload attempt. kind may be empty when the request was
// rejected before the kind was known.
func (m *Metrics) Upload(kind, outcome string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.uploads.WithLabelValues(kind, outcome).Inc()
}

// ObserveStorage records the latency of one storage call.
func (m *Metrics) ObserveStorage(provider, kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.storageDuration.WithLabelValues(provider, kind).Observe(d.Seconds())
}

// HTTPRequest counts one finished request.
func (m *Metrics) HTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
