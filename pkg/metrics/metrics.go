// Package metrics exposes Prometheus instrumentation for schema builds,
// bound resolutions and quality check runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kitepower/awecore/pkg/quality"
	"github.com/kitepower/awecore/pkg/schema"
)

// Registry holds all collectors on a private Prometheus registry
type Registry struct {
	registry *prometheus.Registry

	SchemaBuildsTotal      *prometheus.CounterVec
	SchemaEntries          *prometheus.GaugeVec
	BoundsResolutionsTotal *prometheus.CounterVec
	QualityChecksTotal     *prometheus.CounterVec
	QualityReportsTotal    *prometheus.CounterVec
}

// NewRegistry creates a Registry with all collectors registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.SchemaBuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "awecore_schema_builds_total",
			Help: "Total number of variable schema builds",
		},
		[]string{"status"},
	)

	r.SchemaEntries = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "awecore_schema_entries",
			Help: "Number of schema entries per variable role",
		},
		[]string{"role"},
	)

	r.BoundsResolutionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "awecore_bounds_resolutions_total",
			Help: "Total number of bound table resolutions",
		},
		[]string{"status"},
	)

	r.QualityChecksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "awecore_quality_checks_total",
			Help: "Total number of quality checks by outcome",
		},
		[]string{"status"},
	)

	r.QualityReportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "awecore_quality_reports_total",
			Help: "Total number of quality reports by outcome",
		},
		[]string{"status"},
	)

	return r
}

// Gatherer returns the underlying registry for exposition
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordSchemaBuild records a schema build and, on success, the table sizes
func (r *Registry) RecordSchemaBuild(status string, tables *schema.Tables) {
	r.SchemaBuildsTotal.WithLabelValues(status).Inc()
	if tables == nil {
		return
	}
	for _, role := range schema.Roles {
		r.SchemaEntries.WithLabelValues(role.String()).Set(float64(len(tables.ByRole(role))))
	}
}

// RecordBoundsResolution records a bound resolution attempt
func (r *Registry) RecordBoundsResolution(status string) {
	r.BoundsResolutionsTotal.WithLabelValues(status).Inc()
}

// RecordQualityReport records per-check and whole-report outcomes
func (r *Registry) RecordQualityReport(report quality.Report) {
	passed, failed := 0, 0
	for _, result := range report {
		if result.Passed {
			passed++
		} else {
			failed++
		}
	}
	r.QualityChecksTotal.WithLabelValues("passed").Add(float64(passed))
	r.QualityChecksTotal.WithLabelValues("failed").Add(float64(failed))

	status := "passed"
	if failed > 0 {
		status = "failed"
	}
	r.QualityReportsTotal.WithLabelValues(status).Inc()
}
