package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/infra/source"
)

func newsAPITestServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got == "" {
			t.Errorf("request missing q parameter")
		}
		if got := r.URL.Query().Get("apiKey"); got != "test-key" {
			t.Errorf("apiKey = %q, want test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestNewsAPIClient_Search_Success(t *testing.T) {
	body := `{
		"status": "ok",
		"articles": [
			{
				"source": {"name": "Reuters"},
				"title": "Markets rally",
				"description": "Stocks climbed on Friday.",
				"url": "https://example.com/markets",
				"urlToImage": "https://example.com/markets.jpg",
				"publishedAt": "2026-08-29T09:00:00Z"
			},
			{
				"source": {"name": "AP"},
				"title": "Storm warning issued",
				"description": "",
				"url": "https://example.com/storm",
				"publishedAt": "2026-08-29T08:00:00Z"
			}
		]
	}`
	server := newsAPITestServer(t, body, http.StatusOK)
	defer server.Close()

	client := source.NewNewsAPIClient("test-key", &http.Client{Timeout: 5 * time.Second})
	client.BaseURL = server.URL

	articles, err := client.Search(context.Background(), "US news", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("articles length = %d, want 2", len(articles))
	}
	if articles[0].Title != "Markets rally" {
		t.Errorf("articles[0].Title = %q, want %q", articles[0].Title, "Markets rally")
	}
	if articles[0].SourceName != "Reuters" {
		t.Errorf("articles[0].SourceName = %q, want %q", articles[0].SourceName, "Reuters")
	}
	// Absent fields decode to defaults, never missing values
	if articles[1].Summary != "" || articles[1].ImageURL != "" {
		t.Errorf("absent fields = %q/%q, expected empty strings", articles[1].Summary, articles[1].ImageURL)
	}
}

func TestNewsAPIClient_Search_CapsAtLimit(t *testing.T) {
	var items []string
	for i := 0; i < 10; i++ {
		items = append(items, `{"title": "article", "url": "https://example.com"}`)
	}
	body := `{"status": "ok", "articles": [` + strings.Join(items, ",") + `]}`
	server := newsAPITestServer(t, body, http.StatusOK)
	defer server.Close()

	client := source.NewNewsAPIClient("test-key", &http.Client{Timeout: 5 * time.Second})
	client.BaseURL = server.URL

	articles, err := client.Search(context.Background(), "crowded topic", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(articles) != 3 {
		t.Errorf("articles length = %d, want 3", len(articles))
	}
}

func TestNewsAPIClient_Search_InvalidInput(t *testing.T) {
	client := source.NewNewsAPIClient("test-key", &http.Client{})

	if _, err := client.Search(context.Background(), "", 5); err == nil {
		t.Error("Search() with empty query: expected error")
	}
	if _, err := client.Search(context.Background(), "query", 0); err == nil {
		t.Error("Search() with zero limit: expected error")
	}
}

func TestNewsAPIClient_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := source.NewNewsAPIClient("test-key", &http.Client{Timeout: 5 * time.Second})
	client.BaseURL = server.URL

	if _, err := client.Search(context.Background(), "anything", 5); err == nil {
		t.Error("Search() against 500 response: expected error")
	}
}

func TestNewsAPIClient_Search_ProviderError(t *testing.T) {
	body := `{"status": "error", "message": "apiKeyInvalid"}`
	server := newsAPITestServer(t, body, http.StatusOK)
	defer server.Close()

	client := source.NewNewsAPIClient("test-key", &http.Client{Timeout: 5 * time.Second})
	client.BaseURL = server.URL

	_, err := client.Search(context.Background(), "anything", 5)
	if err == nil {
		t.Fatal("Search() with provider error body: expected error")
	}
	if !strings.Contains(err.Error(), "apiKeyInvalid") {
		t.Errorf("error = %v, want provider message included", err)
	}
}
