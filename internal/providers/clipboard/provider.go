// Package clipboard provides a result provider over recorded clipboard
// history. Selecting an entry copies it back to the clipboard.
package clipboard

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// ProviderID identifies this provider in the registry.
const ProviderID = "clipboard"

const (
	// maxResults bounds entries emitted per query.
	maxResults = 20

	// titleLimit truncates long clipboard content for display.
	titleLimit = 60
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Provider searches clipboard history held in a ClipboardStore.
type Provider struct {
	store driven.ClipboardStore
}

// New creates a clipboard provider over the given store.
func New(store driven.ClipboardStore) *Provider {
	return &Provider{store: store}
}

// ID returns the provider identifier.
func (p *Provider) ID() string { return ProviderID }

// Search streams history entries containing the query, newest first.
// Newer entries score higher so recency survives ranking.
func (p *Provider) Search(ctx context.Context, query string) (<-chan domain.Result, <-chan error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return driven.StreamResults(ctx, nil)
	}

	entries, err := p.store.Search(ctx, query, maxResults)
	if err != nil {
		return driven.FailSearch(fmt.Errorf("searching clipboard history: %w", err))
	}

	results := make([]domain.Result, 0, len(entries))
	for i, entry := range entries {
		results = append(results, domain.Result{
			ID:       entry.ID,
			Title:    displayTitle(entry.Content),
			Subtitle: entry.CopiedAt.Format("Jan 2 15:04"),
			Icon:     "edit-paste",
			Category: domain.CategoryClipboardItem,
			Action:   domain.CopyText(entry.Content),
			Score:    recencyScore(i),
		})
	}
	return driven.StreamResults(ctx, results)
}

// recencyScore maps list position to a score: the newest entry gets
// 1.0 and each older one steps down without reaching zero.
func recencyScore(position int) float64 {
	score := 1.0 - float64(position)*0.04
	if score < 0.2 {
		return 0.2
	}
	return score
}

// displayTitle collapses whitespace and truncates on a rune boundary.
func displayTitle(content string) string {
	title := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(title) <= titleLimit {
		return title
	}
	runes := []rune(title)
	return string(runes[:titleLimit]) + "…"
}
