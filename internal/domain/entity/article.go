// Package entity defines the core domain records for the digest pipeline.
// It contains the normalized record shapes (NewsArticle, GameScore), the
// document model (Section, Digest), and domain-specific errors.
package entity

// NewsArticle represents one normalized news headline from a provider.
// Every field defaults to the empty string so the renderer never has to
// branch on missing values. Summary is held untruncated; shortening it is a
// rendering concern.
type NewsArticle struct {
	Title       string
	Summary     string
	URL         string
	SourceName  string
	ImageURL    string
	PublishedAt string
}
