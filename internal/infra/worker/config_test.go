package worker

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkerConfig)
	}{
		{"invalid cron", func(c *WorkerConfig) { c.CronSchedule = "not a cron" }},
		{"invalid timezone", func(c *WorkerConfig) { c.Timezone = "Mars/Olympus" }},
		{"run timeout too short", func(c *WorkerConfig) { c.RunTimeout = time.Second }},
		{"fetch timeout above run timeout", func(c *WorkerConfig) { c.FetchTimeout = time.Hour }},
		{"zero concurrency", func(c *WorkerConfig) { c.FetchConcurrency = 0 }},
		{"privileged metrics port", func(c *WorkerConfig) { c.MetricsPort = 80 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigFromEnvReadsOverrides(t *testing.T) {
	t.Setenv("DIGEST_CRON", "15 6 * * *")
	t.Setenv("DIGEST_TIMEZONE", "Europe/London")
	t.Setenv("DIGEST_RUN_TIMEOUT", "10m")
	t.Setenv("DIGEST_FETCH_TIMEOUT", "20s")
	t.Setenv("DIGEST_FETCH_CONCURRENCY", "8")
	t.Setenv("DIGEST_METRICS_PORT", "9200")

	metrics := NewDigestMetrics(prometheus.NewRegistry())
	cfg, err := LoadConfigFromEnv(testLogger(), metrics)
	require.NoError(t, err)

	assert.Equal(t, "15 6 * * *", cfg.CronSchedule)
	assert.Equal(t, "Europe/London", cfg.Timezone)
	assert.Equal(t, 10*time.Minute, cfg.RunTimeout)
	assert.Equal(t, 20*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, 9200, cfg.MetricsPort)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("DIGEST_CRON", "every morning please")
	t.Setenv("DIGEST_TIMEZONE", "Nowhere/Fake")
	t.Setenv("DIGEST_FETCH_CONCURRENCY", "500")

	reg := prometheus.NewRegistry()
	metrics := NewDigestMetrics(reg)
	cfg, err := LoadConfigFromEnv(testLogger(), metrics)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.CronSchedule, cfg.CronSchedule)
	assert.Equal(t, def.Timezone, cfg.Timezone)
	assert.Equal(t, def.FetchConcurrency, cfg.FetchConcurrency)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, 1.0, counterValue(t, reg, "digest_config_fallbacks_total", "field", "cron_schedule"))
	assert.Equal(t, 1.0, counterValue(t, reg, "digest_config_fallbacks_total", "field", "timezone"))
	assert.Equal(t, 1.0, counterValue(t, reg, "digest_config_fallbacks_total", "field", "fetch_concurrency"))
}
