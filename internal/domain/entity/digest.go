package entity

import "time"

// Layout selects how a section's items are rendered.
type Layout string

const (
	// LayoutNews renders NewsArticle items as headline blocks.
	LayoutNews Layout = "news"

	// LayoutScoreboard renders GameScore items as "away @ home" lines.
	LayoutScoreboard Layout = "scoreboard"

	// LayoutFixtures renders GameScore items as "away vs home" lines.
	LayoutFixtures Layout = "fixtures"
)

// Section is a labeled, ordered group of records produced by exactly one
// fetch operation. A section is homogeneous: depending on Layout either
// Articles or Games is populated, never both. An empty section is valid and
// is always rendered with an explicit placeholder, never omitted.
type Section struct {
	Label    string
	Layout   Layout
	Articles []NewsArticle
	Games    []GameScore
}

// Empty reports whether the section holds no records.
func (s Section) Empty() bool {
	return len(s.Articles) == 0 && len(s.Games) == 0
}

// Len returns the number of records in the section.
func (s Section) Len() int {
	if s.Layout == LayoutNews {
		return len(s.Articles)
	}
	return len(s.Games)
}

// Digest is the complete ordered document for one run. Sections appear in
// configuration order, stable across runs. The digest is fully assembled
// before rendering begins and is never mutated afterwards.
type Digest struct {
	GeneratedAt time.Time
	Sections    []Section
}
