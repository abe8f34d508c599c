package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/quickcast-app/quickcast/internal/adapters/driven/config/file"
	execadapter "github.com/quickcast-app/quickcast/internal/adapters/driven/exec"
	"github.com/quickcast-app/quickcast/internal/adapters/driven/storage/memory"
	"github.com/quickcast-app/quickcast/internal/adapters/driven/storage/sqlite"
	"github.com/quickcast-app/quickcast/internal/adapters/driving/cli"
	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/core/services"
	"github.com/quickcast-app/quickcast/internal/logger"
	"github.com/quickcast-app/quickcast/internal/providers/apps"
	"github.com/quickcast-app/quickcast/internal/providers/calc"
	"github.com/quickcast-app/quickcast/internal/providers/calendar"
	clipprovider "github.com/quickcast-app/quickcast/internal/providers/clipboard"
	"github.com/quickcast-app/quickcast/internal/providers/emoji"
	"github.com/quickcast-app/quickcast/internal/providers/files"
	"github.com/quickcast-app/quickcast/internal/providers/meeting"
	"github.com/quickcast-app/quickcast/internal/providers/sysactions"
)

func main() {
	if err := run(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return err
	}

	settings, err := file.LoadSettings(configStore)
	if err != nil {
		logger.Warn("Loading settings failed, using defaults: %v", err)
		settings = domain.DefaultSettings()
	}

	var clipStore driven.ClipboardStore
	if store, err := sqlite.NewStore(""); err != nil {
		logger.Warn("Opening history database failed, clipboard history is session-only: %v", err)
		clipStore = memory.NewClipboardStore()
	} else {
		defer store.Close()
		clipStore = store.ClipboardStore()
	}

	opener := execadapter.NewSystemOpener()
	dispatcher := services.NewDispatcher(services.Executors{
		Launcher:  opener,
		Opener:    opener,
		Panels:    opener,
		Clipboard: execadapter.NewClipboard(),
		Power:     execadapter.NewPower(),
		Meeting:   execadapter.NewMeetingClient(""),
	}, settings)

	registry := services.NewProviderRegistry()
	for _, p := range []driven.Provider{
		apps.New(nil),
		files.New(searchRoots()),
		sysactions.New(),
		calendar.New(agendaSource()),
		clipprovider.New(clipStore),
		emoji.New(),
		meeting.New(dispatcher),
		calc.New(),
	} {
		if err := registry.Register(p); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go clipprovider.NewRecorder(clipStore).Run(ctx)

	cli.SetServices(&cli.Services{
		Registry:    registry,
		Dispatcher:  dispatcher,
		Settings:    settings,
		ConfigStore: configStore,
		WireSession: dispatcher.SetSession,
	})

	return cli.Execute()
}

// searchRoots returns the directories the files provider walks.
func searchRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	var roots []string
	for _, dir := range []string{"Documents", "Downloads", "Desktop"} {
		path := filepath.Join(home, dir)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			roots = append(roots, path)
		}
	}
	return roots
}

// agendaSource picks the calendar backing file. An exported .ics file
// takes precedence over the hand-written TOML agenda.
func agendaSource() calendar.EventSource {
	home, err := os.UserHomeDir()
	if err != nil {
		return calendar.NewFileSource("")
	}
	ics := filepath.Join(home, ".quickcast", "events.ics")
	if _, err := os.Stat(ics); err == nil {
		return calendar.NewICSSource(ics)
	}
	return calendar.NewFileSource(filepath.Join(home, ".quickcast", "events.toml"))
}
