package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/infra/source"
)

const scoreboardBody = `{
	"events": [
		{
			"competitions": [
				{
					"competitors": [
						{"team": {"displayName": "Boston Celtics"}, "score": "112"},
						{"team": {"displayName": "Los Angeles Lakers"}, "score": "108"}
					],
					"status": {"type": {"description": "Final"}}
				}
			]
		},
		{
			"competitions": [
				{
					"competitors": [
						{"team": {"displayName": "Miami Heat"}},
						{"team": {"displayName": "Chicago Bulls"}}
					],
					"status": {"type": {}}
				}
			]
		},
		{
			"competitions": [
				{
					"competitors": [
						{"team": {"displayName": "Lone Team"}}
					]
				}
			]
		}
	]
}`

func scoreboardTestServer(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestScoreboardClient_Scoreboard_Success(t *testing.T) {
	server := scoreboardTestServer(scoreboardBody)
	defer server.Close()

	client := source.NewScoreboardClient(&http.Client{Timeout: 5 * time.Second})
	client.BaseURL = server.URL

	games, err := client.Scoreboard(context.Background(), "nba", 0)
	if err != nil {
		t.Fatalf("Scoreboard() error = %v", err)
	}

	// The single-competitor event is skipped.
	if len(games) != 2 {
		t.Fatalf("games length = %d, want 2", len(games))
	}

	if games[0].HomeTeam != "Boston Celtics" || games[0].AwayTeam != "Los Angeles Lakers" {
		t.Errorf("teams = %q/%q, want Celtics home, Lakers away", games[0].HomeTeam, games[0].AwayTeam)
	}
	if games[0].HomeScore != "112" || games[0].AwayScore != "108" {
		t.Errorf("scores = %q/%q, want 112/108", games[0].HomeScore, games[0].AwayScore)
	}
	if games[0].Status != "Final" {
		t.Errorf("status = %q, want Final", games[0].Status)
	}

	// Missing scores and status fall back to placeholders.
	if games[1].HomeScore != entity.ScorePlaceholder || games[1].AwayScore != entity.ScorePlaceholder {
		t.Errorf("placeholder scores = %q/%q, want %q", games[1].HomeScore, games[1].AwayScore, entity.ScorePlaceholder)
	}
	if games[1].Status != entity.StatusPlaceholder {
		t.Errorf("placeholder status = %q, want %q", games[1].Status, entity.StatusPlaceholder)
	}
}

func TestScoreboardClient_Scoreboard_Limit(t *testing.T) {
	server := scoreboardTestServer(scoreboardBody)
	defer server.Close()

	client := source.NewScoreboardClient(&http.Client{Timeout: 5 * time.Second})
	client.BaseURL = server.URL

	games, err := client.Scoreboard(context.Background(), "premier-league", 1)
	if err != nil {
		t.Fatalf("Scoreboard() error = %v", err)
	}
	if len(games) != 1 {
		t.Errorf("games length = %d, want 1", len(games))
	}
}

func TestScoreboardClient_Scoreboard_UnknownLeague(t *testing.T) {
	client := source.NewScoreboardClient(&http.Client{Timeout: 5 * time.Second})

	games, err := client.Scoreboard(context.Background(), "kabaddi-super-league", 5)
	if err != nil {
		t.Fatalf("Scoreboard() error = %v, want nil for unknown league", err)
	}
	if len(games) != 0 {
		t.Errorf("games length = %d, want 0", len(games))
	}
}

func TestScoreboardClient_Scoreboard_EmptyEvents(t *testing.T) {
	server := scoreboardTestServer(`{"events": []}`)
	defer server.Close()

	client := source.NewScoreboardClient(&http.Client{Timeout: 5 * time.Second})
	client.BaseURL = server.URL

	games, err := client.Scoreboard(context.Background(), "nfl", 0)
	if err != nil {
		t.Fatalf("Scoreboard() error = %v", err)
	}
	if len(games) != 0 {
		t.Errorf("games length = %d, want 0", len(games))
	}
}

func TestScoreboardClient_Scoreboard_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := source.NewScoreboardClient(&http.Client{Timeout: 5 * time.Second})
	client.BaseURL = server.URL

	if _, err := client.Scoreboard(context.Background(), "nba", 0); err == nil {
		t.Error("Scoreboard() against 502 response: expected error")
	}
}

func TestKnownLeagues(t *testing.T) {
	leagues := source.KnownLeagues()
	if len(leagues) == 0 {
		t.Fatal("KnownLeagues() returned no leagues")
	}

	found := map[string]bool{}
	for _, l := range leagues {
		found[l] = true
	}
	for _, want := range []string{"nba", "nfl", "premier-league"} {
		if !found[want] {
			t.Errorf("KnownLeagues() missing %q", want)
		}
	}
}
