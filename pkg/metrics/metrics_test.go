package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kiosco-api/pkg/metrics"
)

func TestMetrics_CuentaHitsYMisses(t *testing.T) {
	m := metrics.New("kiosco_test")

	m.CacheMiss("kpis")
	m.CacheHit("kpis")
	m.CacheHit("kpis")
	m.LedgerOutcome("sale", "rejected")
	m.ObserveReport("kpis", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("kpis", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("kpis", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LedgerOperations.WithLabelValues("sale", "rejected")))
}

func TestMetrics_ReceptorNilNoFalla(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.CacheHit("kpis")
		m.CacheMiss("kpis")
		m.CacheError("get")
		m.LedgerOutcome("purchase", "committed")
		m.ObserveReport("kpis", time.Second)
	})
}
