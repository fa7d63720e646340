// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the application's collectors.  Its helper methods accept
// a nil receiver so components can run without metrics in tests.
type Metrics struct {
	// HTTP requests by method, route and status code
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP latency by method and route
	HTTPRequestDuration *prometheus.HistogramVec

	// catalog API calls by endpoint and outcome (ok, error)
	CatalogRequestsTotal *prometheus.CounterVec

	// catalog API latency by endpoint
	CatalogRequestDuration *prometheus.HistogramVec

	// checkout completions by outcome (confirmed, promo_rejected, error)
	CheckoutOrdersTotal *prometheus.CounterVec

	// broadcasts by delivery channel
	BroadcastsSentTotal *prometheus.CounterVec

	// response cache lookups by result (hit, miss)
	CacheLookupsTotal *prometheus.CounterVec
}

// New registers the collectors with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		CatalogRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_requests_total",
				Help: "Total number of movie catalog API calls",
			},
			[]string{"endpoint", "outcome"},
		),
		CatalogRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_request_duration_seconds",
				Help:    "Movie catalog API latency in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),
		CheckoutOrdersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_orders_total",
				Help: "Checkout completion attempts",
			},
			[]string{"outcome"},
		),
		BroadcastsSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcasts_sent_total",
				Help: "Broadcast messages sent from the admin console",
			},
			[]string{"delivery"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Response cache lookups",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CatalogRequestsTotal,
		m.CatalogRequestDuration,
		m.CheckoutOrdersTotal,
		m.BroadcastsSentTotal,
		m.CacheLookupsTotal,
	)

	return m
}

// ObserveCatalog records one catalog call.
func (m *Metrics) ObserveCatalog(endpoint string, err error, took time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CatalogRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.CatalogRequestDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

func (m *Metrics) CountOrder(outcome string) {
	if m == nil {
		return
	}
	m.CheckoutOrdersTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CountBroadcast(delivery string) {
	if m == nil {
		return
	}
	m.BroadcastsSentTotal.WithLabelValues(delivery).Inc()
}

func (m *Metrics) CountCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}
