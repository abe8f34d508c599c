// Package apps provides the installed-applications result provider.
// It scans configured directories for .desktop launcher entries, caches
// the scan, and invalidates the cache when the directories change.
package apps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	gocache "github.com/patrickmn/go-cache"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/logger"
	"github.com/quickcast-app/quickcast/internal/match"
)

// ProviderID identifies this provider in the registry.
const ProviderID = "applications"

const (
	cacheKey = "entries"
	cacheTTL = 5 * time.Minute
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// entry is one launchable application.
type entry struct {
	name string
	path string
	exec string
	icon string
}

// Provider searches installed applications.
type Provider struct {
	dirs    []string
	cache   *gocache.Cache
	watcher *fsnotify.Watcher
}

// New creates an applications provider scanning the given directories.
// If dirs is empty, the standard XDG application directories are used.
// A filesystem watcher invalidates the scan cache on changes; if the
// watcher cannot be created the provider still works, re-scanning only
// when the cache TTL lapses.
func New(dirs []string) *Provider {
	if len(dirs) == 0 {
		dirs = defaultDirs()
	}

	p := &Provider{
		dirs:  dirs,
		cache: gocache.New(cacheTTL, 10*time.Minute),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("apps: watcher unavailable, relying on cache TTL: %v", err)
		return p
	}
	p.watcher = watcher
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Debug("apps: not watching %s: %v", dir, err)
		}
	}
	go p.watch()

	return p
}

// defaultDirs returns the standard application entry directories.
func defaultDirs() []string {
	dirs := []string{
		"/usr/share/applications",
		"/usr/local/share/applications",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}
	return dirs
}

// ID returns the provider identifier.
func (p *Provider) ID() string { return ProviderID }

// Search streams applications whose names match the query.
func (p *Provider) Search(ctx context.Context, query string) (<-chan domain.Result, <-chan error) {
	if strings.TrimSpace(query) == "" {
		// Empty query: no application suggestions.
		return driven.StreamResults(ctx, nil)
	}

	entries, err := p.entries(ctx)
	if err != nil {
		return driven.FailSearch(fmt.Errorf("scan applications: %w", err))
	}

	var results []domain.Result
	for _, e := range entries {
		score := match.Score(query, e.name)
		if score == 0 {
			continue
		}
		results = append(results, domain.Result{
			ID:       e.path,
			Title:    e.name,
			Subtitle: e.exec,
			Icon:     e.icon,
			Category: domain.CategoryApplication,
			Action:   domain.OpenApp(e.path),
			Score:    score,
		})
	}
	return driven.StreamResults(ctx, results)
}

// entries returns the cached scan, re-scanning on a miss.
func (p *Provider) entries(ctx context.Context) ([]entry, error) {
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.([]entry), nil
	}

	entries, err := p.scan(ctx)
	if err != nil {
		return nil, err
	}
	p.cache.Set(cacheKey, entries, gocache.DefaultExpiration)
	logger.Debug("apps: scanned %d entries from %d dirs", len(entries), len(p.dirs))
	return entries, nil
}

// scan reads .desktop files from every configured directory. Missing
// directories are skipped, not errors.
func (p *Provider) scan(ctx context.Context) ([]entry, error) {
	var entries []entry
	for _, dir := range p.dirs {
		items, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, item := range items {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if item.IsDir() || !strings.HasSuffix(item.Name(), ".desktop") {
				continue
			}
			path := filepath.Join(dir, item.Name())
			e, ok := parseDesktopFile(path)
			if !ok {
				continue
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// watch invalidates the cache whenever a watched directory changes.
func (p *Provider) watch() {
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
				logger.Debug("apps: %s changed, invalidating cache", event.Name)
				p.cache.Delete(cacheKey)
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("apps: watcher error: %v", err)
		}
	}
}

// Close stops the directory watcher.
func (p *Provider) Close() error {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.Close()
}
