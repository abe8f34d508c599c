// Package emoji provides a result provider over an embedded emoji
// table. Selecting a result copies the character to the clipboard.
package emoji

import (
	"context"
	"strings"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/match"
)

// ProviderID identifies this provider in the registry.
const ProviderID = "emoji"

// minQueryLen keeps single-character prefixes from flooding results
// with weak emoji matches.
const minQueryLen = 2

// entry is one emoji with its canonical name and search keywords.
type entry struct {
	char     string
	name     string
	keywords []string
}

var table = []entry{
	{"😀", "grinning face", []string{"smile", "happy"}},
	{"😂", "face with tears of joy", []string{"laugh", "lol"}},
	{"😅", "grinning face with sweat", []string{"phew", "relief"}},
	{"😉", "winking face", []string{"wink"}},
	{"😊", "smiling face with smiling eyes", []string{"blush"}},
	{"😍", "smiling face with heart eyes", []string{"love"}},
	{"😎", "smiling face with sunglasses", []string{"cool"}},
	{"😢", "crying face", []string{"sad", "tear"}},
	{"😡", "pouting face", []string{"angry", "mad"}},
	{"😱", "face screaming in fear", []string{"scream", "shocked"}},
	{"🤔", "thinking face", []string{"hmm", "think"}},
	{"🙄", "face with rolling eyes", []string{"eyeroll"}},
	{"😴", "sleeping face", []string{"zzz", "tired"}},
	{"🤷", "person shrugging", []string{"shrug", "dunno"}},
	{"👍", "thumbs up", []string{"approve", "yes", "+1"}},
	{"👎", "thumbs down", []string{"no", "-1"}},
	{"👏", "clapping hands", []string{"clap", "applause"}},
	{"🙏", "folded hands", []string{"thanks", "please", "pray"}},
	{"👋", "waving hand", []string{"wave", "hello", "bye"}},
	{"💪", "flexed biceps", []string{"strong", "muscle"}},
	{"🤝", "handshake", []string{"deal", "agreement"}},
	{"❤️", "red heart", []string{"love", "heart"}},
	{"💔", "broken heart", []string{"heartbreak"}},
	{"🔥", "fire", []string{"lit", "hot"}},
	{"✨", "sparkles", []string{"shiny", "magic"}},
	{"⭐", "star", []string{"favourite"}},
	{"🎉", "party popper", []string{"celebrate", "tada", "party"}},
	{"🎂", "birthday cake", []string{"birthday", "cake"}},
	{"☕", "hot beverage", []string{"coffee", "tea"}},
	{"🍕", "pizza", []string{"food"}},
	{"🍺", "beer mug", []string{"beer", "drink"}},
	{"🚀", "rocket", []string{"launch", "ship"}},
	{"✅", "check mark button", []string{"done", "check", "tick"}},
	{"❌", "cross mark", []string{"wrong", "nope"}},
	{"⚠️", "warning", []string{"caution", "alert"}},
	{"❓", "question mark", []string{"question", "what"}},
	{"💡", "light bulb", []string{"idea"}},
	{"📌", "pushpin", []string{"pin"}},
	{"📅", "calendar", []string{"date", "schedule"}},
	{"🐛", "bug", []string{"insect", "defect"}},
	{"🎵", "musical note", []string{"music", "song"}},
	{"🌧️", "cloud with rain", []string{"rain", "weather"}},
	{"☀️", "sun", []string{"sunny", "weather"}},
	{"🌙", "crescent moon", []string{"night", "moon"}},
}

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Provider searches the embedded emoji table.
type Provider struct{}

// New creates an emoji provider.
func New() *Provider { return &Provider{} }

// ID returns the provider identifier.
func (p *Provider) ID() string { return ProviderID }

// Search streams emoji whose name or keywords match the query.
func (p *Provider) Search(ctx context.Context, query string) (<-chan domain.Result, <-chan error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLen {
		return driven.StreamResults(ctx, nil)
	}

	var results []domain.Result
	for _, e := range table {
		score := entryScore(query, e)
		if score == 0 {
			continue
		}
		results = append(results, domain.Result{
			ID:       e.name,
			Title:    e.char + "  " + e.name,
			Subtitle: strings.Join(e.keywords, ", "),
			Category: domain.CategoryEmoji,
			Action:   domain.CopyText(e.char),
			Score:    score,
		})
	}
	return driven.StreamResults(ctx, results)
}

// entryScore matches the query against the name and every keyword,
// discounting keyword hits below name hits.
func entryScore(query string, e entry) float64 {
	best := match.Score(query, e.name)
	for _, kw := range e.keywords {
		if s := match.Score(query, kw) * 0.9; s > best {
			best = s
		}
	}
	return best
}
