// Package source provides adapter clients for the external providers the
// digest pulls from: NewsAPI headline search, ESPN scoreboards, and RSS/Atom
// feeds. Each client performs a single outbound call per invocation, returns
// at most the requested number of normalized records in provider order, and
// reports transport, status, and decode problems as ordinary errors for the
// aggregator to absorb.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/resilience/circuitbreaker"
)

const defaultNewsAPIBaseURL = "https://newsapi.org/v2/everything"

// NewsAPIClient is the query-based adapter for newsapi.org.
type NewsAPIClient struct {
	// BaseURL is the search endpoint. Overridable for tests.
	BaseURL string

	apiKey         string
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	rateLimiter    *RateLimiter
}

// NewNewsAPIClient creates a NewsAPI client with the given API key and HTTP
// client. The client carries its own circuit breaker and a courtesy rate
// limiter, since several digest sections target the same host.
func NewNewsAPIClient(apiKey string, client *http.Client) *NewsAPIClient {
	return &NewsAPIClient{
		BaseURL:        defaultNewsAPIBaseURL,
		apiKey:         apiKey,
		httpClient:     client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsAPIConfig()),
		rateLimiter:    NewRateLimiter(2.0, 2),
	}
}

// newsAPIResponse mirrors the subset of the NewsAPI payload the digest uses.
// Absent fields decode to zero values, which are already the record defaults.
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
}

type newsAPISource struct {
	Name string `json:"name"`
}

// Search fetches up to limit articles matching the query, most popular
// first, in provider order. A single attempt is made; any transport, status,
// or decode failure is returned to the caller.
func (c *NewsAPIClient) Search(ctx context.Context, query string, limit int) ([]entity.NewsArticle, error) {
	if query == "" {
		return nil, errors.New("newsapi: empty query")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("newsapi: non-positive limit %d", limit)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("newsapi rate limiter: %w", err)
	}

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doSearch(ctx, query, limit)
	})
	if err != nil {
		return nil, err
	}

	return result.([]entity.NewsArticle), nil
}

func (c *NewsAPIClient) doSearch(ctx context.Context, query string, limit int) ([]entity.NewsArticle, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", "popularity")
	params.Set("language", "en")
	params.Set("pageSize", fmt.Sprintf("%d", limit))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("newsapi: unexpected status %d", resp.StatusCode)
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("newsapi: decode response: %w", err)
	}
	if payload.Status == "error" {
		return nil, fmt.Errorf("newsapi: provider error: %s", payload.Message)
	}

	items := payload.Articles
	if len(items) > limit {
		items = items[:limit]
	}

	articles := make([]entity.NewsArticle, 0, len(items))
	for _, item := range items {
		articles = append(articles, entity.NewsArticle{
			Title:       item.Title,
			Summary:     item.Description,
			URL:         item.URL,
			SourceName:  item.Source.Name,
			ImageURL:    item.URLToImage,
			PublishedAt: item.PublishedAt,
		})
	}

	return articles, nil
}
