package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	RegistrationsCreated  *prometheus.CounterVec
	RegistrationsRejected *prometheus.CounterVec
	LookupDuration        *prometheus.HistogramVec
	HTTPRequestDuration   *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RegistrationsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "conventions_registrations_created_total",
			Help: "Total number of registrations created, by kind (convention, talk).",
		}, []string{"kind"}),
		RegistrationsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "conventions_registrations_rejected_total",
			Help: "Total number of rejected registrations, by kind and reason.",
		}, []string{"kind", "reason"}),
		LookupDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "conventions_validation_lookup_duration_seconds",
			Help:    "Latency of the concurrent existence and membership lookups.",
			Buckets: prometheus.DefBuckets,
		}, []string{"lookup"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "conventions_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route pattern and status code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// IncRegistrationCreated counts a successful join of the given kind.
func (m *Metrics) IncRegistrationCreated(kind string) {
	if m == nil {
		return
	}
	m.RegistrationsCreated.WithLabelValues(kind).Inc()
}

// IncRegistrationRejected counts a join refused for reason.
func (m *Metrics) IncRegistrationRejected(kind, reason string) {
	if m == nil {
		return
	}
	m.RegistrationsRejected.WithLabelValues(kind, reason).Inc()
}

// ObserveLookup records the latency of one validation lookup.
func (m *Metrics) ObserveLookup(lookup string, d time.Duration) {
	if m == nil {
		return
	}
	m.LookupDuration.WithLabelValues(lookup).Observe(d.Seconds())
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
