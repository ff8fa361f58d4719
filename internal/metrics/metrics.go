package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	FilterQueries   *prometheus.CounterVec
	VaccinesApplied prometheus.Counter
	UsersRegistered prometheus.Counter
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "petcare_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "petcare_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		FilterQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "petcare_filter_queries_total",
			Help: "Listing queries by entity and the filter combination that was resolved",
		}, []string{"entity", "variant"}),
		VaccinesApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "petcare_vaccines_applied_total",
			Help: "Total number of vaccines moved from pending to applied",
		}),
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "petcare_users_registered_total",
			Help: "Total number of users registered",
		}),
	}
}

// ObserveFilter counts a resolved listing query. Safe on a nil receiver.
func (m *Metrics) ObserveFilter(entity, variant string) {
	if m == nil {
		return
	}
	m.FilterQueries.WithLabelValues(entity, variant).Inc()
}

func (m *Metrics) IncrementVaccinesApplied() {
	if m == nil {
		return
	}
	m.VaccinesApplied.Inc()
}

func (m *Metrics) IncrementUsersRegistered() {
	if m == nil {
		return
	}
	m.UsersRegistered.Inc()
}
