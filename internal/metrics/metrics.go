// Package metrics holds the Prometheus collectors of the booking engine. All
// methods are safe on a nil *Metrics so callers and tests can run without them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "barbershop"

type Metrics struct {
	BookingsCreated      *prometheus.CounterVec
	BookingTransitions   *prometheus.CounterVec
	SlotConflicts        prometheus.Counter
	QuotaRejections      prometheus.Counter
	TxRetries            prometheus.Counter
	CacheRequests        *prometheus.CounterVec
	InvalidationFailures *prometheus.CounterVec
	HTTPRequests         *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// New builds the collectors and registers them on reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings created, by initial status.",
		}, []string{"status"}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Accepted booking status transitions.",
		}, []string{"from", "to"}),
		SlotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_slot_conflicts_total",
			Help:      "Booking attempts rejected because the slot was taken.",
		}),
		QuotaRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "featured_quota_rejections_total",
			Help:      "Featured requests rejected by the quota.",
		}),
		TxRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_retries_total",
			Help:      "Transactions retried after a transient database error.",
		}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Listing cache lookups by result.",
		}, []string{"result"}),
		InvalidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidation_failures_total",
			Help:      "Tag invalidations that failed after all retries.",
		}, []string{"tag"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.BookingsCreated,
			m.BookingTransitions,
			m.SlotConflicts,
			m.QuotaRejections,
			m.TxRetries,
			m.CacheRequests,
			m.InvalidationFailures,
			m.HTTPRequests,
			m.HTTPRequestDuration,
		)
	}

	return m
}

func (m *Metrics) BookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(status).Inc()
}

func (m *Metrics) Transition(from, to string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) SlotConflict() {
	if m == nil {
		return
	}
	m.SlotConflicts.Inc()
}

func (m *Metrics) QuotaRejected() {
	if m == nil {
		return
	}
	m.QuotaRejections.Inc()
}

func (m *Metrics) TxRetried() {
	if m == nil {
		return
	}
	m.TxRetries.Inc()
}

// CacheResult records a lookup as "hit", "miss" or "bypass".
func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) InvalidationFailed(tag string) {
	if m == nil {
		return
	}
	m.InvalidationFailures.WithLabelValues(tag).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
