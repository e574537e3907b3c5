// Package render turns an assembled digest into the self-contained HTML
// document that gets emailed. Rendering is pure: it performs no I/O and
// depends only on the digest passed in.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/coreyely1-blip/daily-news-digest-v2/internal/domain/entity"
)

//go:embed template.html
var templateFS embed.FS

// summaryBudget is the maximum summary length shown per article. Longer
// summaries are cut at the budget and suffixed with an ellipsis.
const summaryBudget = 200

var digestTemplate = template.Must(
	template.New("template.html").Funcs(template.FuncMap{
		"truncate":   truncateSummary,
		"matchupSep": matchupSeparator,
	}).ParseFS(templateFS, "template.html"),
)

// Render produces the HTML document for the digest. Every configured
// section appears in order; empty sections render a layout-appropriate
// placeholder instead of being dropped.
func Render(dig *entity.Digest) (string, error) {
	if dig == nil {
		return "", fmt.Errorf("render: nil digest")
	}

	data := struct {
		Date     string
		Sections []entity.Section
	}{
		Date:     dig.GeneratedAt.Format("Monday, January 2, 2006"),
		Sections: dig.Sections,
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	return buf.String(), nil
}

// Subject returns the email subject line for the digest.
func Subject(dig *entity.Digest) string {
	return "Daily News Digest - " + dig.GeneratedAt.Format("Monday, January 2, 2006")
}

// truncateSummary cuts a summary to the display budget. Summaries at or
// under the budget pass through unchanged, so re-truncating an already
// truncated summary is a no-op.
func truncateSummary(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= summaryBudget {
		return s
	}
	if strings.HasSuffix(s, "...") && len(runes) <= summaryBudget+3 {
		return s
	}
	return string(runes[:summaryBudget]) + "..."
}

// matchupSeparator picks the separator between away and home team names.
// Completed and live games read "away @ home"; upcoming fixtures read
// "away vs home".
func matchupSeparator(layout entity.Layout) string {
	if layout == entity.LayoutFixtures {
		return "vs"
	}
	return "@"
}
