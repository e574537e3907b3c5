package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
)

// Kind selects which source adapter a section plan uses.
type Kind string

const (
	// KindNews is the query-based NewsAPI adapter.
	KindNews Kind = "news"

	// KindRSS is the feed-URL-based RSS/Atom adapter.
	KindRSS Kind = "rss"

	// KindScoreboard is the fixture-based ESPN adapter, rendered "away @ home".
	KindScoreboard Kind = "scoreboard"

	// KindFixtures is the fixture-based ESPN adapter, rendered "away vs home".
	KindFixtures Kind = "fixtures"
)

// SectionPlan is one entry of the ordered section configuration. The slice
// order is a first-class invariant: sections appear in the digest in exactly
// this order, every run.
type SectionPlan struct {
	Label   string `yaml:"label"`
	Kind    Kind   `yaml:"kind"`
	Query   string `yaml:"query,omitempty"`
	League  string `yaml:"league,omitempty"`
	FeedURL string `yaml:"feed_url,omitempty"`
	Limit   int    `yaml:"limit,omitempty"`
}

// Validate checks the plan entry for structural problems. League
// identifiers are deliberately not validated here: the scoreboard adapter
// treats unknown leagues as empty results, not errors.
func (p SectionPlan) Validate() error {
	if p.Label == "" {
		return &entity.ValidationError{Field: "label", Message: "must not be empty"}
	}

	switch p.Kind {
	case KindNews:
		if p.Query == "" {
			return &entity.ValidationError{Field: "query", Message: "required for news sections"}
		}
		if p.Limit <= 0 {
			return &entity.ValidationError{Field: "limit", Message: "must be positive for news sections"}
		}
	case KindRSS:
		if p.FeedURL == "" {
			return &entity.ValidationError{Field: "feed_url", Message: "required for rss sections"}
		}
		if p.Limit <= 0 {
			return &entity.ValidationError{Field: "limit", Message: "must be positive for rss sections"}
		}
	case KindScoreboard, KindFixtures:
		if p.League == "" {
			return &entity.ValidationError{Field: "league", Message: "required for score sections"}
		}
		if p.Limit < 0 {
			return &entity.ValidationError{Field: "limit", Message: "must not be negative"}
		}
	default:
		return &entity.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", p.Kind)}
	}

	return nil
}

// sectionsFile is the YAML document shape of a section plan file.
type sectionsFile struct {
	Sections []SectionPlan `yaml:"sections"`
}

// LoadSections returns the ordered section plan. When path is empty the
// built-in default plan is used; otherwise the YAML file at path is parsed.
// Any invalid entry makes the whole plan invalid (configuration failures are
// fatal, per the error taxonomy).
func LoadSections(path string) ([]SectionPlan, error) {
	if path == "" {
		return DefaultSections(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", entity.ErrInvalidSectionPlan, path, err)
	}

	var file sectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", entity.ErrInvalidSectionPlan, path, err)
	}
	if len(file.Sections) == 0 {
		return nil, fmt.Errorf("%w: %s contains no sections", entity.ErrInvalidSectionPlan, path)
	}

	for i, plan := range file.Sections {
		if err := plan.Validate(); err != nil {
			return nil, fmt.Errorf("%w: section %d (%q): %v", entity.ErrInvalidSectionPlan, i, plan.Label, err)
		}
	}

	return file.Sections, nil
}

// DefaultSections is the built-in section plan: the news searches, the NBA
// and NFL scoreboards, and the soccer fixture lists.
func DefaultSections() []SectionPlan {
	return []SectionPlan{
		{Label: "Top 5 US News", Kind: KindNews, Query: "US news", Limit: 5},
		{Label: "Top 5 Europe News", Kind: KindNews, Query: "Europe news", Limit: 5},
		{Label: "Top 5 Africa News", Kind: KindNews, Query: "Africa news", Limit: 5},
		{Label: "Top 3 India News", Kind: KindNews, Query: "India news", Limit: 3},
		{Label: "Top 3 China News", Kind: KindNews, Query: "China news", Limit: 3},
		{Label: "Top 5 NBA News", Kind: KindNews, Query: "NBA basketball", Limit: 5},
		{Label: "Top 5 NFL News", Kind: KindNews, Query: "NFL football", Limit: 5},
		{Label: "Top 5 Premier League News", Kind: KindNews, Query: "English Premier League", Limit: 5},
		{Label: "Top 2 West Ham News", Kind: KindNews, Query: "West Ham United", Limit: 2},
		{Label: "NBA Scores (Previous Day)", Kind: KindScoreboard, League: "nba"},
		{Label: "NFL Scores", Kind: KindScoreboard, League: "nfl"},
		{Label: "Premier League", Kind: KindFixtures, League: "premier-league", Limit: 5},
		{Label: "Champions League", Kind: KindFixtures, League: "champions-league", Limit: 5},
		{Label: "Europa League", Kind: KindFixtures, League: "europa-league", Limit: 5},
		{Label: "EFL Championship", Kind: KindFixtures, League: "championship", Limit: 5},
		{Label: "FA Cup", Kind: KindFixtures, League: "fa-cup", Limit: 5},
		{Label: "Carabao Cup", Kind: KindFixtures, League: "carabao-cup", Limit: 5},
	}
}
