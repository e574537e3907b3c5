package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DigestMetrics provides Prometheus metrics for digest pipeline runs.
//
// Metrics:
//   - digest_runs_total: total runs by status (success/failure)
//   - digest_run_duration_seconds: histogram of end-to-end run duration
//   - digest_sections_built_total: sections assembled across all runs
//   - digest_section_fetch_failures_total: source failures by section label
//   - digest_delivery_failures_total: failed email deliveries
//   - digest_last_success_timestamp: Unix time of the last successful run
//   - digest_config_fallbacks_total: configuration fallbacks by field
type DigestMetrics struct {
	RunsTotal             *prometheus.CounterVec
	RunDurationSeconds    prometheus.Histogram
	SectionsBuiltTotal    prometheus.Counter
	SectionFetchFailures  *prometheus.CounterVec
	DeliveryFailuresTotal prometheus.Counter
	LastSuccessTimestamp  prometheus.Gauge
	ConfigFallbacksTotal  *prometheus.CounterVec
}

// NewDigestMetrics creates and registers all pipeline metrics with reg.
// Passing a fresh prometheus.NewRegistry keeps tests isolated; production
// passes prometheus.DefaultRegisterer.
func NewDigestMetrics(reg prometheus.Registerer) *DigestMetrics {
	factory := promauto.With(reg)

	return &DigestMetrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "digest_runs_total",
			Help: "Total number of digest runs by status (success/failure)",
		}, []string{"status"}),

		RunDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "digest_run_duration_seconds",
			Help:    "Duration of one digest run, fetch through delivery, in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		}),

		SectionsBuiltTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "digest_sections_built_total",
			Help: "Total number of sections assembled across all runs",
		}),

		SectionFetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "digest_section_fetch_failures_total",
			Help: "Total number of source fetch failures by section label",
		}, []string{"section"}),

		DeliveryFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "digest_delivery_failures_total",
			Help: "Total number of failed digest deliveries",
		}),

		LastSuccessTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "digest_last_success_timestamp",
			Help: "Unix timestamp of the last successful digest run",
		}),

		ConfigFallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "digest_config_fallbacks_total",
			Help: "Total number of configuration fallbacks applied by field",
		}, []string{"field"}),
	}
}

// RecordRun increments the run counter. Status is "success" or "failure".
func (m *DigestMetrics) RecordRun(status string) {
	m.RunsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes one run's end-to-end duration in seconds.
func (m *DigestMetrics) RecordRunDuration(seconds float64) {
	m.RunDurationSeconds.Observe(seconds)
}

// RecordSectionsBuilt adds the number of sections assembled in one run.
func (m *DigestMetrics) RecordSectionsBuilt(count int) {
	m.SectionsBuiltTotal.Add(float64(count))
}

// RecordSectionFetchFailure counts one source failure for the given section.
func (m *DigestMetrics) RecordSectionFetchFailure(section string) {
	m.SectionFetchFailures.WithLabelValues(section).Inc()
}

// RecordDeliveryFailure counts one failed delivery attempt.
func (m *DigestMetrics) RecordDeliveryFailure() {
	m.DeliveryFailuresTotal.Inc()
}

// RecordLastSuccess records the current time as the last successful run.
func (m *DigestMetrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}

// RecordConfigFallback counts one configuration fallback for a field.
func (m *DigestMetrics) RecordConfigFallback(field string) {
	m.ConfigFallbacksTotal.WithLabelValues(field).Inc()
}
