// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the carrierview server.
//
// Metrics are registered on a private registry owned by Metrics, so tests and
// multiple servers in one process never collide on registration.
package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/tableio"
)

const metricsNamespace = "carrierview"

// Metrics holds all collectors.
type Metrics struct {
	registry *prometheus.Registry

	// UploadsTotal counts upload attempts. Labels: type (csv, xlsx, unknown), status.
	UploadsTotal *prometheus.CounterVec

	// IndexBuildSeconds measures decode + index time. Labels: type.
	IndexBuildSeconds *prometheus.HistogramVec

	// IndexErrorsTotal counts failed builds. Labels: kind (schema, parse, other).
	IndexErrorsTotal *prometheus.CounterVec

	// CacheLookupsTotal counts index cache lookups. Labels: result (hit, miss).
	CacheLookupsTotal *prometheus.CounterVec

	// CarriersIndexed is the carrier count of the most recent successful build.
	CarriersIndexed prometheus.Gauge

	// ActiveSessions tracks live dashboard sessions.
	ActiveSessions prometheus.Gauge
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		UploadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "uploads_total",
			Help:      "Dataset uploads by file type and outcome",
		}, []string{"type", "status"}),
		IndexBuildSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "index_build_seconds",
			Help:      "Time to decode and index an uploaded dataset",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		IndexErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "index_errors_total",
			Help:      "Failed index builds by error kind",
		}, []string{"kind"}),
		CacheLookupsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookups_total",
			Help:      "Index cache lookups by result",
		}, []string{"result"}),
		CarriersIndexed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "carriers_indexed",
			Help:      "Carrier count of the most recently built index",
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Live dashboard sessions",
		}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLookup implements indexcache.Observer.
func (m *Metrics) ObserveLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveBuild implements indexcache.Observer.
func (m *Metrics) ObserveBuild(ft tableio.FileType, d time.Duration, ix *relindex.Index, err error) {
	m.IndexBuildSeconds.WithLabelValues(string(ft)).Observe(d.Seconds())
	if err != nil {
		m.IndexErrorsTotal.WithLabelValues(ErrorKind(err)).Inc()
		return
	}
	if ix != nil {
		m.CarriersIndexed.Set(float64(len(ix.Carriers)))
	}
}

// ObserveUpload records an upload outcome.
func (m *Metrics) ObserveUpload(ft tableio.FileType, err error) {
	t := string(ft)
	if t == "" {
		t = "unknown"
	}
	status := "ok"
	if err != nil {
		status = ErrorKind(err)
	}
	m.UploadsTotal.WithLabelValues(t, status).Inc()
}

// ErrorKind classifies an upload/index error for metric labels.
func ErrorKind(err error) string {
	switch {
	case relindex.IsSchemaError(err):
		return "schema"
	case relindex.IsParseError(err):
		return "parse"
	case errors.Is(err, tableio.ErrUnsupportedType):
		return "unsupported_type"
	}
	return "other"
}
