// Package digest provides the section aggregation use case. It drives the
// configured, ordered section plan to completion, invoking one source
// adapter per section and absorbing each adapter's failure at that section's
// boundary: a slow or erroring source degrades exactly one section, never
// the run.
package digest

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/config"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/observability/logging"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/observability/tracing"
)

// NewsSearcher is the query-based adapter contract (NewsAPI).
type NewsSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]entity.NewsArticle, error)
}

// ScoreboardFetcher is the fixture-based adapter contract (ESPN).
type ScoreboardFetcher interface {
	Scoreboard(ctx context.Context, league string, limit int) ([]entity.GameScore, error)
}

// FeedLister is the feed-URL adapter contract (RSS/Atom).
type FeedLister interface {
	Latest(ctx context.Context, feedURL string, limit int) ([]entity.NewsArticle, error)
}

// Config holds aggregation behavior settings.
type Config struct {
	// FetchTimeout bounds each adapter invocation. Exceeding it is treated
	// identically to any other source failure.
	FetchTimeout time.Duration

	// Concurrency limits concurrent section fetches. 1 yields sequential
	// fetching; output order is the configured order either way.
	Concurrency int
}

// Service assembles a Digest from the configured section plan.
type Service struct {
	News   NewsSearcher
	Scores ScoreboardFetcher
	Feeds  FeedLister
	Plans  []config.SectionPlan
	cfg    Config
}

// NewService creates a digest Service with the provided adapters and plan.
func NewService(news NewsSearcher, scores ScoreboardFetcher, feeds FeedLister, plans []config.SectionPlan, cfg Config) Service {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return Service{
		News:   news,
		Scores: scores,
		Feeds:  feeds,
		Plans:  plans,
		cfg:    cfg,
	}
}

// BuildStats contains statistics about one aggregation run.
type BuildStats struct {
	Sections       int
	Items          int64
	EmptySections  int64
	FailedSections []string
	Duration       time.Duration
}

// BuildDigest fetches every configured section and assembles the Digest.
// Sections are fetched with bounded concurrency; each goroutine writes
// exactly one pre-allocated section slot by index, so output order is the
// configured order regardless of completion order.
//
// Source failures never escalate: a failed fetch produces an empty section,
// a warn log, and a stats entry. The only error BuildDigest returns is
// run-level cancellation (context canceled or run timeout), in which case
// the partial digest must not be delivered.
func (s *Service) BuildDigest(ctx context.Context) (*entity.Digest, *BuildStats, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "digest.build")
	defer span.End()

	dig := &entity.Digest{
		GeneratedAt: start,
		Sections:    make([]entity.Section, len(s.Plans)),
	}
	stats := &BuildStats{Sections: len(s.Plans)}
	var failedMu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.cfg.Concurrency)

	for i, plan := range s.Plans {
		eg.Go(func() error {
			section, err := s.buildSection(egCtx, plan)
			if err != nil {
				// Run-level cancellation only; source failures are absorbed
				// inside buildSection.
				return err
			}

			if section.Empty() {
				atomic.AddInt64(&stats.EmptySections, 1)
			}
			atomic.AddInt64(&stats.Items, int64(section.Len()))
			if section.failed {
				failedMu.Lock()
				stats.FailedSections = append(stats.FailedSections, plan.Label)
				failedMu.Unlock()
			}

			dig.Sections[i] = section.Section
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, stats, err
	}

	stats.Duration = time.Since(start)
	logger.Info("digest assembled",
		slog.Int("sections", stats.Sections),
		slog.Int64("items", stats.Items),
		slog.Int64("empty_sections", stats.EmptySections),
		slog.Int("failed_sections", len(stats.FailedSections)),
		slog.Duration("duration", stats.Duration),
	)

	return dig, stats, nil
}

// builtSection pairs a Section with whether its fetch failed (as opposed to
// legitimately returning nothing).
type builtSection struct {
	entity.Section
	failed bool
}

// buildSection fetches one section under the per-fetch timeout. On adapter
// failure it substitutes an empty section and reports failed=true; the
// returned error is non-nil only when the run itself was canceled.
func (s *Service) buildSection(ctx context.Context, plan config.SectionPlan) (builtSection, error) {
	logger := logging.FromContext(ctx)

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	fetchCtx, span := tracing.GetTracer().Start(fetchCtx, "digest.fetch_section")
	defer span.End()

	section := builtSection{Section: entity.Section{Label: plan.Label, Layout: layoutFor(plan.Kind)}}

	var err error
	switch plan.Kind {
	case config.KindNews:
		section.Articles, err = s.News.Search(fetchCtx, plan.Query, plan.Limit)
	case config.KindRSS:
		section.Articles, err = s.Feeds.Latest(fetchCtx, plan.FeedURL, plan.Limit)
	case config.KindScoreboard, config.KindFixtures:
		section.Games, err = s.Scores.Scoreboard(fetchCtx, plan.League, plan.Limit)
	default:
		// Rejected at config load; kept defensive here.
		logger.Warn("unknown section kind, leaving section empty",
			slog.String("label", plan.Label),
			slog.String("kind", string(plan.Kind)))
		return section, nil
	}

	if err != nil {
		// Distinguish run-level cancellation from a per-section timeout:
		// only the former aborts the run.
		if ctx.Err() != nil {
			return section, ctx.Err()
		}

		logger.Warn("section fetch failed, substituting empty section",
			slog.String("label", plan.Label),
			slog.String("kind", string(plan.Kind)),
			slog.Any("error", err))
		section.Articles = nil
		section.Games = nil
		section.failed = true
		return section, nil
	}

	return section, nil
}

// layoutFor maps a plan kind to its render layout.
func layoutFor(kind config.Kind) entity.Layout {
	switch kind {
	case config.KindScoreboard:
		return entity.LayoutScoreboard
	case config.KindFixtures:
		return entity.LayoutFixtures
	default:
		return entity.LayoutNews
	}
}
