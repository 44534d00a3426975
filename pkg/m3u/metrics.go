package m3u

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of a single merge run. Each Metrics has its
// own registry so runs and tests do not share state.
type Metrics struct {
	registry *prometheus.Registry

	SourcesTotal     *prometheus.CounterVec
	EntriesExtracted prometheus.Counter
	LinesSkipped     prometheus.Counter
	UniqueEntries    prometheus.Gauge
	RunDuration      prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SourcesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "m3u_merge_sources_total",
				Help: "Number of playlist sources processed",
			},
			[]string{"status"}, // "ok", "failed"
		),
		EntriesExtracted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "m3u_merge_entries_extracted_total",
				Help: "Valid entries extracted across all sources, before merging",
			},
		),
		LinesSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "m3u_merge_lines_skipped_total",
				Help: "Marker lines dropped because the following line was not a URL",
			},
		),
		UniqueEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "m3u_merge_unique_entries",
				Help: "Unique entries in the merged playlist",
			},
		),
		RunDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "m3u_merge_run_duration_seconds",
				Help: "Duration of the last merge run in seconds",
			},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "m3u_merge_last_run_timestamp_seconds",
				Help: "Unix timestamp of the last merge run",
			},
		),
	}

	m.registry.MustRegister(
		m.SourcesTotal,
		m.EntriesExtracted,
		m.LinesSkipped,
		m.UniqueEntries,
		m.RunDuration,
		m.LastRunTimestamp,
	)

	return m
}

// Observe records the outcome of one source.
func (m *Metrics) Observe(r SourceResult) {
	if !r.OK() {
		m.SourcesTotal.WithLabelValues("failed").Inc()
		return
	}
	m.SourcesTotal.WithLabelValues("ok").Inc()
	m.EntriesExtracted.Add(float64(r.Entries.Len()))
	m.LinesSkipped.Add(float64(len(r.Skipped)))
}

// Finish records the run duration and completion time.
func (m *Metrics) Finish(start time.Time) {
	m.RunDuration.Set(time.Since(start).Seconds())
	m.LastRunTimestamp.SetToCurrentTime()
}

// WriteTextfile writes the metrics in the Prometheus text format, for
// the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
