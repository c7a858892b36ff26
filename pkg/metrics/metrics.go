// Package metrics expone contadores Prometheus del motor de inventario y reportes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores. Todos los métodos aceptan receptor nil (no registran nada).
type Metrics struct {
	registry *prometheus.Registry

	CacheRequests    *prometheus.CounterVec
	CacheErrors      *prometheus.CounterVec
	LedgerOperations *prometheus.CounterVec
	ReportDuration   *prometheus.HistogramVec
}

// New registra los colectores en un registry propio (no el global) bajo el namespace dado.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_requests_total",
			Help:      "Consultas al caché de reportes por tipo y resultado (hit/miss)",
		},
		[]string{"report", "result"},
	)
	m.CacheErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_errors_total",
			Help:      "Fallos del backend de caché por operación",
		},
		[]string{"op"},
	)
	m.LedgerOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_operations_total",
			Help:      "Compras y ventas procesadas por resultado",
		},
		[]string{"kind", "outcome"},
	)
	m.ReportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_compute_duration_seconds",
			Help:      "Duración del cálculo de reportes (solo misses)",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"report"},
	)

	registry.MustRegister(m.CacheRequests, m.CacheErrors, m.LedgerOperations, m.ReportDuration)
	return m
}

// CacheHit cuenta un acierto del caché.
func (m *Metrics) CacheHit(report string) {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues(report, "hit").Inc()
}

// CacheMiss cuenta un fallo del caché.
func (m *Metrics) CacheMiss(report string) {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues(report, "miss").Inc()
}

// CacheError cuenta un error del backend (get/set).
func (m *Metrics) CacheError(op string) {
	if m == nil {
		return
	}
	m.CacheErrors.WithLabelValues(op).Inc()
}

// LedgerOutcome cuenta una compra o venta: outcome es committed, rejected o failed.
func (m *Metrics) LedgerOutcome(kind, outcome string) {
	if m == nil {
		return
	}
	m.LedgerOperations.WithLabelValues(kind, outcome).Inc()
}

// ObserveReport registra cuánto tardó calcular un reporte.
func (m *Metrics) ObserveReport(report string, d time.Duration) {
	if m == nil {
		return
	}
	m.ReportDuration.WithLabelValues(report).Observe(d.Seconds())
}

// Registry devuelve el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler endpoint /metrics para este registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
