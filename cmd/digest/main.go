// Command digest assembles the daily news digest and emails it.
//
// By default it performs one run and exits: fetch every configured section,
// render the HTML document, deliver it, exit 0 on success and 1 on failure.
// With DIGEST_CRON set it instead stays resident and runs on that schedule,
// exposing Prometheus metrics and health probes.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/config"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/infra/mailer"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/infra/source"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/infra/worker"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/observability/logging"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/observability/tracing"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/render"
	digestUC "github.com/coreyely1-blip/daily-news-digest-v2/internal/usecase/digest"
	pkgconfig "github.com/coreyely1-blip/daily-news-digest-v2/pkg/config"
)

func main() {
	// Local development convenience; absence of .env is not an error.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid, aborting before any fetch", slog.Any("error", err))
		os.Exit(1)
	}

	plans, err := config.LoadSections(os.Getenv("DIGEST_SECTIONS_FILE"))
	if err != nil {
		logger.Error("section plan invalid, aborting before any fetch", slog.Any("error", err))
		os.Exit(1)
	}
	warnUnknownLeagues(logger, plans)

	metrics := worker.NewDigestMetrics(prometheus.DefaultRegisterer)
	workerCfg, _ := worker.LoadConfigFromEnv(logger, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Setup(ctx)
	if err != nil {
		logger.Warn("tracing setup failed, continuing without traces", slog.Any("error", err))
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Error("tracing shutdown failed", slog.Any("error", err))
			}
		}()
	}

	svc := buildService(cfg, plans, workerCfg)
	mlr, err := buildMailer(cfg)
	if err != nil {
		logger.Error("mailer configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	if os.Getenv("DIGEST_CRON") == "" {
		// One-shot mode: a single run decides the exit code.
		if err := runDigest(ctx, logger, svc, mlr, workerCfg, metrics); err != nil {
			logger.Error("digest run failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	runScheduled(ctx, logger, svc, mlr, workerCfg, metrics)
}

// buildService wires the source adapters into the digest use case. All
// adapters share one pooled HTTP client.
func buildService(cfg *config.Config, plans []config.SectionPlan, workerCfg *worker.WorkerConfig) digestUC.Service {
	httpClient := createHTTPClient()

	return digestUC.NewService(
		source.NewNewsAPIClient(cfg.NewsAPIKey, httpClient),
		source.NewScoreboardClient(httpClient),
		source.NewFeedClient(httpClient),
		plans,
		digestUC.Config{
			FetchTimeout: workerCfg.FetchTimeout,
			Concurrency:  workerCfg.FetchConcurrency,
		},
	)
}

// buildMailer selects the delivery backend. DIGEST_DRY_RUN=true renders the
// digest and logs what would be sent without touching SMTP.
func buildMailer(cfg *config.Config) (mailer.Mailer, error) {
	if pkgconfig.GetEnvBool("DIGEST_DRY_RUN", false) {
		return mailer.NewNoopMailer(), nil
	}
	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SenderEmail,
		Password: cfg.SenderPassword,
		From:     cfg.SenderEmail,
		To:       cfg.RecipientEmail,
	})
}

// runDigest executes one complete pipeline run under the run timeout.
// Source failures have already been absorbed into empty sections by the
// time BuildDigest returns; only run cancellation, rendering, and delivery
// can fail the run.
func runDigest(ctx context.Context, logger *slog.Logger, svc digestUC.Service, mlr mailer.Mailer, workerCfg *worker.WorkerConfig, metrics *worker.DigestMetrics) error {
	start := time.Now()
	runID := uuid.NewString()
	logger = logging.WithRunID(logger, runID)
	ctx = logging.WithLogger(ctx, logger)

	ctx, cancel := context.WithTimeout(ctx, workerCfg.RunTimeout)
	defer cancel()

	logger.Info("digest run started")

	fail := func(err error) error {
		metrics.RecordRun("failure")
		metrics.RecordRunDuration(time.Since(start).Seconds())
		return err
	}

	dig, stats, err := svc.BuildDigest(ctx)
	if err != nil {
		return fail(fmt.Errorf("build digest: %w", err))
	}
	metrics.RecordSectionsBuilt(stats.Sections)
	for _, label := range stats.FailedSections {
		metrics.RecordSectionFetchFailure(label)
	}

	html, err := render.Render(dig)
	if err != nil {
		return fail(fmt.Errorf("render digest: %w", err))
	}

	if err := mlr.Deliver(ctx, render.Subject(dig), html); err != nil {
		metrics.RecordDeliveryFailure()
		return fail(err)
	}

	metrics.RecordRun("success")
	metrics.RecordRunDuration(time.Since(start).Seconds())
	metrics.RecordLastSuccess()

	logger.Info("digest run completed",
		slog.Int("sections", stats.Sections),
		slog.Int64("items", stats.Items),
		slog.Int("failed_sections", len(stats.FailedSections)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// runScheduled stays resident and runs the pipeline on the configured cron
// schedule. A failed scheduled run is logged and counted but does not stop
// the scheduler; the next tick gets a fresh attempt.
func runScheduled(ctx context.Context, logger *slog.Logger, svc digestUC.Service, mlr mailer.Mailer, workerCfg *worker.WorkerConfig, metrics *worker.DigestMetrics) {
	startMetricsServer(ctx, logger, workerCfg.MetricsPort)

	healthServer := worker.NewHealthServer(fmt.Sprintf(":%d", workerCfg.MetricsPort+1), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	loc, err := time.LoadLocation(workerCfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", workerCfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(workerCfg.CronSchedule, func() {
		if err := runDigest(ctx, logger, svc, mlr, workerCfg, metrics); err != nil {
			logger.Error("scheduled digest run failed", slog.Any("error", err))
		}
	})
	if err != nil {
		logger.Error("failed to register cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("scheduler started",
		slog.String("schedule", workerCfg.CronSchedule),
		slog.String("timezone", workerCfg.Timezone))

	<-ctx.Done()
	c.Stop()
}

// warnUnknownLeagues flags plan entries whose league has no adapter
// mapping. Not fatal: those sections render as empty with a placeholder.
func warnUnknownLeagues(logger *slog.Logger, plans []config.SectionPlan) {
	known := source.KnownLeagues()
	for _, plan := range plans {
		if plan.League == "" {
			continue
		}
		if !slices.Contains(known, plan.League) {
			logger.Warn("section references unknown league, it will render empty",
				slog.String("label", plan.Label),
				slog.String("league", plan.League))
		}
	}
}

// createHTTPClient builds the shared outbound HTTP client with pooling and
// TLS 1.2 minimum.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}
