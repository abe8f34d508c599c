// Package calendar provides a result provider over an injectable event
// source, surfacing upcoming events with a join action when the event
// carries a meeting link.
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/match"
)

// ProviderID identifies this provider in the registry.
const ProviderID = "calendar"

// defaultWindow bounds how far ahead events are fetched.
const defaultWindow = 24 * time.Hour

// Event is a single calendar entry as reported by an EventSource.
type Event struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
	URL   string
}

// EventSource supplies upcoming events. Implementations wrap whatever
// backing calendar is available (ICS files, a desktop calendar daemon).
type EventSource interface {
	Upcoming(ctx context.Context, within time.Duration) ([]Event, error)
}

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Provider searches upcoming events by title.
type Provider struct {
	source EventSource
	window time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// New creates a calendar provider over the given source.
func New(source EventSource) *Provider {
	return &Provider{
		source: source,
		window: defaultWindow,
		now:    time.Now,
	}
}

// ID returns the provider identifier.
func (p *Provider) ID() string { return ProviderID }

// Search fetches events inside the lookahead window and streams the
// ones whose title matches the query. Events with a meeting link open
// it; others copy the event title.
func (p *Provider) Search(ctx context.Context, query string) (<-chan domain.Result, <-chan error) {
	if strings.TrimSpace(query) == "" {
		return driven.StreamResults(ctx, nil)
	}

	events, err := p.source.Upcoming(ctx, p.window)
	if err != nil {
		return driven.FailSearch(fmt.Errorf("fetching upcoming events: %w", err))
	}

	now := p.now()
	var results []domain.Result
	for _, ev := range events {
		if ev.End.Before(now) {
			continue
		}
		score := match.Score(query, ev.Title)
		if score == 0 {
			continue
		}
		results = append(results, domain.Result{
			ID:       ev.ID,
			Title:    ev.Title,
			Subtitle: startLabel(now, ev.Start),
			Icon:     "x-office-calendar",
			Category: domain.CategoryCalendarEvent,
			Action:   eventAction(ev),
			Score:    score,
		})
	}
	return driven.StreamResults(ctx, results)
}

func eventAction(ev Event) domain.Action {
	if ev.URL != "" {
		return domain.OpenURL(ev.URL)
	}
	return domain.CopyText(ev.Title)
}

// startLabel renders the event start relative to now: "now", "in 12m",
// "in 3h", or a clock time past the same day.
func startLabel(now, start time.Time) string {
	until := start.Sub(now)
	switch {
	case until <= 0:
		return "now"
	case until < time.Hour:
		return fmt.Sprintf("in %dm", int(until.Minutes()))
	case until < 12*time.Hour:
		return fmt.Sprintf("in %dh", int(until.Hours()))
	default:
		return start.Format("Mon 15:04")
	}
}
