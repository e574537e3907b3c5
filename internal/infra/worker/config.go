// Package worker provides the scheduling runtime around the digest
// pipeline: configuration for cron-driven runs, Prometheus metrics, and the
// health endpoint used by liveness and readiness probes.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	pkgconfig "github.com/coreyely1-blip/daily-news-digest-v2/pkg/config"
)

// WorkerConfig holds the operational settings for scheduled digest runs.
//
// All fields have defaults, and LoadConfigFromEnv follows a fail-open
// strategy: an invalid environment value falls back to the default with a
// warning instead of aborting startup. Missing a morning digest because of
// a typo in a timezone variable is worse than running on the default
// schedule.
type WorkerConfig struct {
	// CronSchedule is the standard 5-field cron expression for digest runs.
	// Default: "0 7 * * *" (every day at 7:00).
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC".
	Timezone string

	// RunTimeout bounds one complete run, fetch through delivery.
	// Default: 5 minutes.
	RunTimeout time.Duration

	// FetchTimeout bounds each individual section fetch within a run.
	// Default: 10 seconds.
	FetchTimeout time.Duration

	// FetchConcurrency limits concurrent section fetches. Range 1-16.
	// Default: 4.
	FetchConcurrency int

	// MetricsPort is the port for the metrics and health HTTP server.
	// Range 1024-65535. Default: 9091.
	MetricsPort int
}

// DefaultConfig returns the production defaults: a daily 7:00 UTC run with
// a 5-minute run budget and moderate fetch parallelism.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:     "0 7 * * *",
		Timezone:         "UTC",
		RunTimeout:       5 * time.Minute,
		FetchTimeout:     10 * time.Second,
		FetchConcurrency: 4,
		MetricsPort:      9091,
	}
}

// Validate checks every field and aggregates all failures into one error.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule %q: %w", c.CronSchedule, err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone %q: %w", c.Timezone, err))
	}
	if c.RunTimeout < time.Minute || c.RunTimeout > time.Hour {
		errs = append(errs, fmt.Errorf("run timeout %s outside 1m-1h", c.RunTimeout))
	}
	if c.FetchTimeout <= 0 || c.FetchTimeout > c.RunTimeout {
		errs = append(errs, fmt.Errorf("fetch timeout %s must be positive and below the run timeout", c.FetchTimeout))
	}
	if c.FetchConcurrency < 1 || c.FetchConcurrency > 16 {
		errs = append(errs, fmt.Errorf("fetch concurrency %d outside 1-16", c.FetchConcurrency))
	}
	if c.MetricsPort < 1024 || c.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("metrics port %d outside 1024-65535", c.MetricsPort))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv builds a WorkerConfig from environment variables,
// falling back field by field to DefaultConfig on invalid values.
//
// Environment variables:
//   - DIGEST_CRON: cron expression (default "0 7 * * *")
//   - DIGEST_TIMEZONE: IANA timezone name (default "UTC")
//   - DIGEST_RUN_TIMEOUT: duration string, e.g. "5m"
//   - DIGEST_FETCH_TIMEOUT: duration string, e.g. "10s"
//   - DIGEST_FETCH_CONCURRENCY: integer 1-16
//   - DIGEST_METRICS_PORT: integer 1024-65535
//
// The returned config is always valid; the error is always nil and exists
// only to keep the conventional (value, error) shape at call sites.
func LoadConfigFromEnv(logger *slog.Logger, metrics *DigestMetrics) (*WorkerConfig, error) {
	def := DefaultConfig()
	cfg := WorkerConfig{
		CronSchedule:     pkgconfig.GetEnvString("DIGEST_CRON", def.CronSchedule),
		Timezone:         pkgconfig.GetEnvString("DIGEST_TIMEZONE", def.Timezone),
		RunTimeout:       pkgconfig.GetEnvDuration("DIGEST_RUN_TIMEOUT", def.RunTimeout),
		FetchTimeout:     pkgconfig.GetEnvDuration("DIGEST_FETCH_TIMEOUT", def.FetchTimeout),
		FetchConcurrency: pkgconfig.GetEnvInt("DIGEST_FETCH_CONCURRENCY", def.FetchConcurrency),
		MetricsPort:      pkgconfig.GetEnvInt("DIGEST_METRICS_PORT", def.MetricsPort),
	}

	fallback := func(field string, apply func()) {
		apply()
		logger.Warn("configuration fallback applied", slog.String("field", field))
		if metrics != nil {
			metrics.RecordConfigFallback(field)
		}
	}

	if _, err := cron.ParseStandard(cfg.CronSchedule); err != nil {
		fallback("cron_schedule", func() { cfg.CronSchedule = def.CronSchedule })
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		fallback("timezone", func() { cfg.Timezone = def.Timezone })
	}
	if cfg.RunTimeout < time.Minute || cfg.RunTimeout > time.Hour {
		fallback("run_timeout", func() { cfg.RunTimeout = def.RunTimeout })
	}
	if cfg.FetchTimeout <= 0 || cfg.FetchTimeout > cfg.RunTimeout {
		fallback("fetch_timeout", func() { cfg.FetchTimeout = def.FetchTimeout })
	}
	if cfg.FetchConcurrency < 1 || cfg.FetchConcurrency > 16 {
		fallback("fetch_concurrency", func() { cfg.FetchConcurrency = def.FetchConcurrency })
	}
	if cfg.MetricsPort < 1024 || cfg.MetricsPort > 65535 {
		fallback("metrics_port", func() { cfg.MetricsPort = def.MetricsPort })
	}

	return &cfg, nil
}
