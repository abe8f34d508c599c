// Package meeting provides meeting-control results whose availability
// tracks the dispatcher's meeting state: start when idle, stop and
// summary while a meeting is in progress.
package meeting

import (
	"context"
	"strings"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/match"
)

// ProviderID identifies this provider in the registry.
const ProviderID = "meeting"

// enrollPrefix introduces speaker enrollment: "enroll <name>".
const enrollPrefix = "enroll "

// StateSource reports the current meeting state. The dispatcher
// satisfies it.
type StateSource interface {
	MeetingState() domain.MeetingState
}

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Provider offers meeting controls valid for the current state.
type Provider struct {
	state StateSource
}

// New creates a meeting provider reading state from the given source.
func New(state StateSource) *Provider {
	return &Provider{state: state}
}

// ID returns the provider identifier.
func (p *Provider) ID() string { return ProviderID }

// control is one offered meeting action with its match keywords.
type control struct {
	id       string
	title    string
	subtitle string
	keywords []string
	action   domain.Action
}

var idleControls = []control{
	{
		id: "start-meeting", title: "Start Meeting",
		subtitle: "Begin recording and transcription",
		keywords: []string{"record", "meeting", "transcribe"},
		action:   domain.Action{Kind: domain.ActionStartMeeting},
	},
}

var inMeetingControls = []control{
	{
		id: "stop-meeting", title: "Stop Meeting",
		subtitle: "End the current recording",
		keywords: []string{"end", "meeting", "record"},
		action:   domain.Action{Kind: domain.ActionStopMeeting},
	},
	{
		id: "meeting-summary", title: "Meeting Summary",
		subtitle: "Summarise the meeting so far",
		keywords: []string{"summary", "recap", "notes"},
		action:   domain.Action{Kind: domain.ActionMeetingSummary},
	},
}

// Search streams the controls valid in the current state that match
// the query. While in a meeting, "enroll <name>" offers speaker
// enrollment for that name.
func (p *Provider) Search(ctx context.Context, query string) (<-chan domain.Result, <-chan error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return driven.StreamResults(ctx, nil)
	}

	state := p.state.MeetingState()
	controls := idleControls
	if state == domain.MeetingInProgress {
		controls = inMeetingControls
	}

	var results []domain.Result
	for _, c := range controls {
		score := controlScore(query, c)
		if score == 0 {
			continue
		}
		results = append(results, domain.Result{
			ID:       c.id,
			Title:    c.title,
			Subtitle: c.subtitle,
			Icon:     "audio-input-microphone",
			Category: domain.CategoryAction,
			Action:   c.action,
			Score:    score,
		})
	}

	if state == domain.MeetingInProgress {
		if r, ok := enrollResult(query); ok {
			results = append(results, r)
		}
	}
	return driven.StreamResults(ctx, results)
}

func controlScore(query string, c control) float64 {
	best := match.Score(query, c.title)
	for _, kw := range c.keywords {
		if s := match.Score(query, kw) * 0.9; s > best {
			best = s
		}
	}
	return best
}

// enrollResult parses "enroll <name>" into a speaker enrollment result.
func enrollResult(query string) (domain.Result, bool) {
	lower := strings.ToLower(query)
	if !strings.HasPrefix(lower, enrollPrefix) {
		return domain.Result{}, false
	}
	name := strings.TrimSpace(query[len(enrollPrefix):])
	if name == "" {
		return domain.Result{}, false
	}
	return domain.Result{
		ID:       "enroll-speaker",
		Title:    "Enroll Speaker: " + name,
		Subtitle: "Tag this voice in the transcript",
		Icon:     "audio-input-microphone",
		Category: domain.CategoryAction,
		Action:   domain.EnrollSpeaker(name),
		Score:    1.0,
	}, true
}
