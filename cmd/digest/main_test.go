package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/config"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/infra/worker"
	digestUC "github.com/coreyely1-blip/daily-news-digest-v2/internal/usecase/digest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeNews struct{ err error }

func (f fakeNews) Search(ctx context.Context, _ string, _ int) ([]entity.NewsArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return []entity.NewsArticle{{Title: "headline", URL: "https://example.com"}}, nil
}

type fakeScores struct{}

func (fakeScores) Scoreboard(_ context.Context, _ string, _ int) ([]entity.GameScore, error) {
	return nil, nil
}

type fakeFeeds struct{}

func (fakeFeeds) Latest(_ context.Context, _ string, _ int) ([]entity.NewsArticle, error) {
	return nil, nil
}

type fakeMailer struct {
	err       error
	delivered int
	subject   string
}

func (f *fakeMailer) Deliver(_ context.Context, subject, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.delivered++
	f.subject = subject
	return nil
}

func onePlanService(newsErr error) digestUC.Service {
	plans := []config.SectionPlan{
		{Label: "Top US News", Kind: config.KindNews, Query: "US news", Limit: 5},
	}
	return digestUC.NewService(fakeNews{err: newsErr}, fakeScores{}, fakeFeeds{}, plans, digestUC.Config{})
}

func TestRunDigestDeliversRenderedDigest(t *testing.T) {
	cfg := worker.DefaultConfig()
	metrics := worker.NewDigestMetrics(prometheus.NewRegistry())
	mlr := &fakeMailer{}

	err := runDigest(context.Background(), discardLogger(), onePlanService(nil), mlr, &cfg, metrics)
	if err != nil {
		t.Fatalf("runDigest() error = %v", err)
	}
	if mlr.delivered != 1 {
		t.Fatalf("delivered = %d, want 1", mlr.delivered)
	}
	if mlr.subject == "" {
		t.Error("delivered digest has no subject")
	}
}

func TestRunDigestSourceFailureStillDelivers(t *testing.T) {
	cfg := worker.DefaultConfig()
	metrics := worker.NewDigestMetrics(prometheus.NewRegistry())
	mlr := &fakeMailer{}

	err := runDigest(context.Background(), discardLogger(), onePlanService(errors.New("source down")), mlr, &cfg, metrics)
	if err != nil {
		t.Fatalf("runDigest() error = %v, a failing source must not fail the run", err)
	}
	if mlr.delivered != 1 {
		t.Fatalf("delivered = %d, want 1 even when every section is empty", mlr.delivered)
	}
}

func TestRunDigestDeliveryFailureIsFatal(t *testing.T) {
	cfg := worker.DefaultConfig()
	metrics := worker.NewDigestMetrics(prometheus.NewRegistry())
	mlr := &fakeMailer{err: entity.ErrDeliveryFailed}

	err := runDigest(context.Background(), discardLogger(), onePlanService(nil), mlr, &cfg, metrics)
	if err == nil {
		t.Fatal("runDigest() error = nil, want delivery failure")
	}
	if !errors.Is(err, entity.ErrDeliveryFailed) {
		t.Errorf("error = %v, want ErrDeliveryFailed", err)
	}
}

func TestRunDigestCancelledRunDoesNotDeliver(t *testing.T) {
	cfg := worker.DefaultConfig()
	metrics := worker.NewDigestMetrics(prometheus.NewRegistry())
	mlr := &fakeMailer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runDigest(ctx, discardLogger(), onePlanService(nil), mlr, &cfg, metrics)
	if err == nil {
		t.Fatal("runDigest() error = nil, want cancellation error")
	}
	if mlr.delivered != 0 {
		t.Errorf("delivered = %d, a canceled run must not deliver", mlr.delivered)
	}
}
