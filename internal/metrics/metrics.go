// Package metrics exports scan results in the Prometheus text format for the node exporter
// textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Veraticus/etpscan/internal/model"
)

const namespace = "etpscan"

// ScanMetrics holds the gauges describing the most recent scan.
type ScanMetrics struct {
	registry   *prometheus.Registry
	rows       prometheus.Gauge
	skipped    prometheus.Gauge
	matched    prometheus.Gauge
	duration   prometheus.Gauge
	lastRun    prometheus.Gauge
	byCategory *prometheus.GaugeVec
}

// New creates the gauges on a private registry.
func New() *ScanMetrics {
	m := &ScanMetrics{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Listing rows read in the last scan.",
		}),
		skipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_skipped",
			Help:      "Listing rows skipped as test issues or not traded in the last scan.",
		}),
		matched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidates",
			Help:      "Candidates found in the last scan.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of the last scan.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last scan started.",
		}),
		byCategory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidates_by_category",
			Help:      "Candidates per category in the last scan.",
		}, []string{"category"}),
	}

	m.registry.MustRegister(m.rows, m.skipped, m.matched, m.duration, m.lastRun, m.byCategory)
	return m
}

// Observe records a finished run. Every category gets a sample, zero when absent.
func (m *ScanMetrics) Observe(run model.ScanRun, candidates []model.Candidate) {
	m.rows.Set(float64(run.TotalRows))
	m.skipped.Set(float64(run.Skipped))
	m.matched.Set(float64(len(candidates)))
	m.duration.Set(run.Duration.Seconds())
	m.lastRun.Set(float64(run.StartedAt.Unix()))

	counts := model.CountByCategory(candidates)
	for _, c := range model.AllCategories() {
		m.byCategory.WithLabelValues(string(c)).Set(float64(counts[c]))
	}
}

// Registry exposes the underlying registry.
func (m *ScanMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile atomically writes the metrics to path.
func (m *ScanMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
