// SPDX-License-Identifier: MPL-2.0

// Package metrics defines the Prometheus collectors exposed by the glossary
// server. Collectors live on an isolated registry so tests and multiple
// servers in one process never collide.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/diagnostic"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
)

// Metrics holds the glossary's Prometheus collectors.
type Metrics struct {
	Registry *prometheus.Registry

	// Index build metrics
	IndexBuildsTotal          *prometheus.CounterVec
	IndexBuildDurationSeconds prometheus.Histogram
	IndexTerms                prometheus.Gauge
	IndexCategories           prometheus.Gauge
	IndexGuides               prometheus.Gauge
	DiagnosticsTotal          *prometheus.GaugeVec

	// Query metrics
	QueriesTotal *prometheus.CounterVec

	// HTTP API metrics
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec

	// Build info
	BuildInfo *prometheus.GaugeVec
}

// New creates a Metrics instance with all collectors registered on an
// isolated registry.
func New(version, goVersion string) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		IndexBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glossary_index_builds_total",
				Help: "Total number of glossary index builds.",
			},
			[]string{"result"},
		),
		IndexBuildDurationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "glossary_index_build_duration_seconds",
				Help:    "Duration of discovery plus index build in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
		),
		IndexTerms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "glossary_index_terms",
			Help: "Number of terms in the served index.",
		}),
		IndexCategories: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "glossary_index_categories",
			Help: "Number of categories in the served index.",
		}),
		IndexGuides: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "glossary_index_guides",
			Help: "Number of guides referenced by the served index.",
		}),
		DiagnosticsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "glossary_index_diagnostics",
				Help: "Diagnostics produced by the last index build, by code.",
			},
			[]string{"code"},
		),

		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glossary_queries_total",
				Help: "Total number of glossary queries by outcome.",
			},
			[]string{"outcome"},
		),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glossary_http_requests_total",
				Help: "Total number of HTTP API requests.",
			},
			[]string{"method", "path", "status"},
		),
		RequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "glossary_http_request_duration_seconds",
				Help:    "Duration of HTTP API requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "glossary_info",
				Help: "Build information for the running glossary server.",
			},
			[]string{"version", "go_version"},
		),
	}

	reg.MustRegister(
		m.IndexBuildsTotal,
		m.IndexBuildDurationSeconds,
		m.IndexTerms,
		m.IndexCategories,
		m.IndexGuides,
		m.DiagnosticsTotal,
		m.QueriesTotal,
		m.RequestsTotal,
		m.RequestDurationSeconds,
		m.BuildInfo,
	)

	// Always 1, labels carry the data
	m.BuildInfo.WithLabelValues(version, goVersion).Set(1)

	return m
}

// ObserveBuild records a completed build: its duration, the shape of the
// resulting index and the diagnostic counts. A nil receiver is a no-op.
func (m *Metrics) ObserveBuild(idx *index.Index, diags []diagnostic.Diagnostic, took time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if diagnostic.HasErrors(diags) {
		result = "with_errors"
	}
	m.IndexBuildsTotal.WithLabelValues(result).Inc()
	m.IndexBuildDurationSeconds.Observe(took.Seconds())

	stats := idx.Stats()
	m.IndexTerms.Set(float64(stats.Terms))
	m.IndexCategories.Set(float64(stats.Categories))
	m.IndexGuides.Set(float64(stats.Guides))

	m.DiagnosticsTotal.Reset()
	for code, n := range diagnostic.CountByCode(diags) {
		m.DiagnosticsTotal.WithLabelValues(code.String()).Set(float64(n))
	}
}

// ObserveBuildFailure records a build that could not produce an index.
func (m *Metrics) ObserveBuildFailure() {
	if m == nil {
		return
	}
	m.IndexBuildsTotal.WithLabelValues("failed").Inc()
}

// ObserveQuery records one query and whether it matched anything.
func (m *Metrics) ObserveQuery(matched bool) {
	if m == nil {
		return
	}
	outcome := "match"
	if !matched {
		outcome = "empty"
	}
	m.QueriesTotal.WithLabelValues(outcome).Inc()
}

// Handler returns an http.Handler that serves the Prometheus metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
