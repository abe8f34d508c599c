// Package sysactions provides the system-actions result provider: power
// and session controls plus settings panels, matched by name or keyword.
package sysactions

import (
	"context"
	"strings"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/match"
)

// ProviderID identifies this provider in the registry.
const ProviderID = "sysactions"

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// catalogueEntry is one offered system action.
type catalogueEntry struct {
	id       string
	title    string
	subtitle string
	icon     string
	keywords []string
	action   domain.Action
}

// catalogue is the fixed set of system actions. Keywords widen matching
// beyond the display title ("bin" finds Empty Trash).
var catalogue = []catalogueEntry{
	{
		id: "sleep", title: "Sleep", subtitle: "Put the computer to sleep",
		icon: "system-suspend", keywords: []string{"suspend"},
		action: domain.Action{Kind: domain.ActionSleep},
	},
	{
		id: "lock-screen", title: "Lock Screen", subtitle: "Lock the current session",
		icon: "system-lock-screen", keywords: []string{"lock"},
		action: domain.Action{Kind: domain.ActionLockScreen},
	},
	{
		id: "log-out", title: "Log Out", subtitle: "End the current session",
		icon: "system-log-out", keywords: []string{"sign out", "logout"},
		action: domain.Action{Kind: domain.ActionLogOut},
	},
	{
		id: "restart", title: "Restart", subtitle: "Restart the computer",
		icon: "system-reboot", keywords: []string{"reboot"},
		action: domain.Action{Kind: domain.ActionRestart},
	},
	{
		id: "shut-down", title: "Shut Down", subtitle: "Power off the computer",
		icon: "system-shutdown", keywords: []string{"power off", "poweroff"},
		action: domain.Action{Kind: domain.ActionShutDown},
	},
	{
		id: "empty-trash", title: "Empty Trash", subtitle: "Permanently delete trashed files",
		icon: "user-trash", keywords: []string{"bin", "wastebasket"},
		action: domain.Action{Kind: domain.ActionEmptyTrash},
	},
	{
		id: "panel-network", title: "Network Settings", subtitle: "Open the network panel",
		icon: "preferences-network", keywords: []string{"wifi", "ethernet"},
		action: domain.OpenPanel("network"),
	},
	{
		id: "panel-display", title: "Display Settings", subtitle: "Open the display panel",
		icon: "preferences-display", keywords: []string{"monitor", "screen", "resolution"},
		action: domain.OpenPanel("display"),
	},
	{
		id: "panel-sound", title: "Sound Settings", subtitle: "Open the sound panel",
		icon: "preferences-sound", keywords: []string{"audio", "volume"},
		action: domain.OpenPanel("sound"),
	},
	{
		id: "panel-bluetooth", title: "Bluetooth Settings", subtitle: "Open the bluetooth panel",
		icon: "preferences-bluetooth", keywords: []string{"pairing"},
		action: domain.OpenPanel("bluetooth"),
	},
}

// Provider searches the system action catalogue.
type Provider struct{}

// New creates a sysactions provider.
func New() *Provider { return &Provider{} }

// ID returns the provider identifier.
func (p *Provider) ID() string { return ProviderID }

// Search streams catalogue entries matching the query by title or
// keyword. The keyword score is capped below a title hit so typing the
// real name always wins.
func (p *Provider) Search(ctx context.Context, query string) (<-chan domain.Result, <-chan error) {
	if strings.TrimSpace(query) == "" {
		return driven.StreamResults(ctx, nil)
	}

	var results []domain.Result
	for _, e := range catalogue {
		score := entryScore(query, e)
		if score == 0 {
			continue
		}
		results = append(results, domain.Result{
			ID:       e.id,
			Title:    e.title,
			Subtitle: e.subtitle,
			Icon:     e.icon,
			Category: domain.CategorySystemAction,
			Action:   e.action,
			Score:    score,
		})
	}
	return driven.StreamResults(ctx, results)
}

// entryScore matches the query against the title and every keyword.
func entryScore(query string, e catalogueEntry) float64 {
	best := match.Score(query, e.title)
	for _, kw := range e.keywords {
		if s := match.Score(query, kw) * 0.9; s > best {
			best = s
		}
	}
	return best
}
