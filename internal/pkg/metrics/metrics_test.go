package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.CatalogRequestsTotal)
	assert.NotNil(t, m.CheckoutOrdersTotal)
}

func TestObserveCatalog(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ObserveCatalog("now_playing", nil, 20*time.Millisecond)
	m.ObserveCatalog("now_playing", nil, 30*time.Millisecond)
	m.ObserveCatalog("search", errors.New("boom"), time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CatalogRequestsTotal.WithLabelValues("now_playing", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogRequestsTotal.WithLabelValues("search", "error")))

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "catalog_request_duration_seconds" {
			found = true
			assert.Len(t, f.GetMetric(), 2)
		}
	}
	assert.True(t, found, "catalog_request_duration_seconds metric not found")
}

func TestCounters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.CountOrder("confirmed")
	m.CountOrder("confirmed")
	m.CountBroadcast("both")
	m.CountCache("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CheckoutOrdersTotal.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BroadcastsSentTotal.WithLabelValues("both")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("hit")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCatalog("popular", nil, time.Millisecond)
		m.CountOrder("confirmed")
		m.CountBroadcast("push")
		m.CountCache("miss")
	})
}
