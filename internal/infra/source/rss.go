package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/resilience/circuitbreaker"
)

// FeedClient is a headline adapter for RSS/Atom feeds, for publications that
// expose no JSON API. It uses the gofeed library for parsing.
type FeedClient struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewFeedClient creates a FeedClient with the given HTTP client.
func NewFeedClient(client *http.Client) *FeedClient {
	return &FeedClient{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedConfig()),
	}
}

// Latest retrieves and parses a feed, returning up to limit entries mapped
// to NewsArticle in feed order. The feed title becomes the source
// attribution; the item's published text is carried verbatim.
func (f *FeedClient) Latest(ctx context.Context, feedURL string, limit int) ([]entity.NewsArticle, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("feed: non-positive limit %d", limit)
	}

	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, feedURL, limit)
	})
	if err != nil {
		return nil, err
	}

	return result.([]entity.NewsArticle), nil
}

func (f *FeedClient) doFetch(ctx context.Context, feedURL string, limit int) ([]entity.NewsArticle, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "DailyNewsDigestBot"
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("feed: parse %s: %w", feedURL, err)
	}

	items := feed.Items
	if len(items) > limit {
		items = items[:limit]
	}

	articles := make([]entity.NewsArticle, 0, len(items))
	for _, it := range items {
		article := entity.NewsArticle{
			Title:       it.Title,
			Summary:     it.Description,
			URL:         it.Link,
			SourceName:  feed.Title,
			PublishedAt: it.Published,
		}
		if it.Image != nil {
			article.ImageURL = it.Image.URL
		}
		articles = append(articles, article)
	}

	return articles, nil
}
