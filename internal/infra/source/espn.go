package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
	"github.com/coreyely1-blip/daily-news-digest-v2/internal/resilience/circuitbreaker"
)

const defaultScoreboardBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// leaguePaths is the fixed set of league identifiers the fixture adapter
// recognizes, mapped to their ESPN API paths.
var leaguePaths = map[string]string{
	"nba":              "basketball/nba",
	"nfl":              "football/nfl",
	"premier-league":   "soccer/eng.1",
	"champions-league": "soccer/uefa.champions",
	"europa-league":    "soccer/uefa.europa",
	"championship":     "soccer/eng.2",
	"fa-cup":           "soccer/eng.fa",
	"carabao-cup":      "soccer/eng.cup",
}

// ScoreboardClient is the fixture-based adapter for ESPN scoreboards.
type ScoreboardClient struct {
	// BaseURL is the scoreboard API root. Overridable for tests.
	BaseURL string

	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewScoreboardClient creates an ESPN scoreboard client with the given HTTP
// client. No API key is required.
func NewScoreboardClient(client *http.Client) *ScoreboardClient {
	return &ScoreboardClient{
		BaseURL:        defaultScoreboardBaseURL,
		httpClient:     client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ScoreboardConfig()),
	}
}

// scoreboardResponse mirrors the subset of the ESPN scoreboard payload the
// digest uses. Every level is optional upstream; absent fields decode to
// zero values and the placeholder defaults are applied during mapping.
type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	Competitions []scoreboardCompetition `json:"competitions"`
}

type scoreboardCompetition struct {
	Competitors []scoreboardCompetitor `json:"competitors"`
	Status      scoreboardStatus       `json:"status"`
}

type scoreboardCompetitor struct {
	Team  scoreboardTeam `json:"team"`
	Score string         `json:"score"`
}

type scoreboardTeam struct {
	DisplayName string `json:"displayName"`
}

type scoreboardStatus struct {
	Type scoreboardStatusType `json:"type"`
}

type scoreboardStatusType struct {
	Description string `json:"description"`
}

// Scoreboard fetches up to limit games for the given league identifier, in
// provider order. An unrecognized league yields an empty result, not an
// error; the fixed set is a configuration surface, not a provider contract.
// A limit of zero or less means no cap.
func (c *ScoreboardClient) Scoreboard(ctx context.Context, league string, limit int) ([]entity.GameScore, error) {
	path, ok := leaguePaths[league]
	if !ok {
		slog.Warn("unknown league identifier, returning no games",
			slog.String("league", league))
		return []entity.GameScore{}, nil
	}

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doFetch(ctx, path, limit)
	})
	if err != nil {
		return nil, err
	}

	return result.([]entity.GameScore), nil
}

func (c *ScoreboardClient) doFetch(ctx context.Context, path string, limit int) ([]entity.GameScore, error) {
	endpoint := fmt.Sprintf("%s/%s/scoreboard", c.BaseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("scoreboard: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scoreboard: execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("scoreboard: unexpected status %d", resp.StatusCode)
	}

	var payload scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("scoreboard: decode response: %w", err)
	}

	games := make([]entity.GameScore, 0, len(payload.Events))
	for _, event := range payload.Events {
		if limit > 0 && len(games) >= limit {
			break
		}
		if len(event.Competitions) == 0 {
			continue
		}
		comp := event.Competitions[0]
		// competitors[0] is the home side, competitors[1] the away side
		if len(comp.Competitors) < 2 {
			continue
		}
		games = append(games, entity.NewGameScore(
			comp.Competitors[0].Team.DisplayName,
			comp.Competitors[1].Team.DisplayName,
			comp.Competitors[0].Score,
			comp.Competitors[1].Score,
			comp.Status.Type.Description,
		))
	}

	return games, nil
}

// KnownLeagues returns the league identifiers the adapter recognizes.
// Used at startup to warn about section plans naming leagues the adapter
// will treat as empty.
func KnownLeagues() []string {
	leagues := make([]string, 0, len(leaguePaths))
	for league := range leaguePaths {
		leagues = append(leagues, league)
	}
	return leagues
}
