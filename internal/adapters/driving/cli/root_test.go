package cli

import (
	"context"

	"github.com/quickcast-app/quickcast/internal/adapters/driven/storage/memory"
	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	core "github.com/quickcast-app/quickcast/internal/core/services"
)

// stubProvider returns a fixed result set for any query.
type stubProvider struct {
	id      string
	results []domain.Result
}

func (p *stubProvider) ID() string { return p.id }

func (p *stubProvider) Search(ctx context.Context, _ string) (<-chan domain.Result, <-chan error) {
	return driven.StreamResults(ctx, p.results)
}

// setupTestServices wires real core services over a stub provider and
// returns a cleanup restoring the package state.
func setupTestServices() func() {
	registry := core.NewProviderRegistry()
	_ = registry.Register(&stubProvider{
		id: "stub",
		results: []domain.Result{
			{
				ID:       "editor",
				Title:    "Editor",
				Subtitle: "/usr/share/applications/editor.desktop",
				Category: domain.CategoryApplication,
				Action:   domain.OpenApp("/usr/share/applications/editor.desktop"),
				Score:    0.9,
			},
		},
	})

	settings := domain.DefaultSettings()
	dispatcher := core.NewDispatcher(core.Executors{}, settings)

	prev := services
	SetServices(&Services{
		Registry:    registry,
		Dispatcher:  dispatcher,
		Settings:    settings,
		ConfigStore: memory.NewConfigStore(),
	})

	return func() {
		SetServices(prev)
	}
}
