package apps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcast-app/quickcast/internal/core/domain"
)

func writeDesktopFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func collect(t *testing.T, p *Provider, query string) []domain.Result {
	t.Helper()
	out, errs := p.Search(context.Background(), query)
	var results []domain.Result
	for r := range out {
		results = append(results, r)
	}
	require.NoError(t, <-errs)
	return results
}

const safariDesktop = `[Desktop Entry]
Type=Application
Name=Safari
Exec=/opt/safari/safari %u
Icon=safari
`

const hiddenDesktop = `[Desktop Entry]
Name=Background Helper
Exec=/opt/helper
NoDisplay=true
`

// TestProvider_Search tests scanning and matching of .desktop entries
func TestProvider_Search(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "safari.desktop", safariDesktop)
	writeDesktopFile(t, dir, "helper.desktop", hiddenDesktop)
	writeDesktopFile(t, dir, "readme.txt", "not a desktop file")

	p := New([]string{dir})
	defer p.Close()

	results := collect(t, p, "saf")
	require.Len(t, results, 1)
	assert.Equal(t, "Safari", results[0].Title)
	assert.Equal(t, domain.CategoryApplication, results[0].Category)
	assert.Equal(t, domain.ActionOpenApp, results[0].Action.Kind)
	assert.Equal(t, filepath.Join(dir, "safari.desktop"), results[0].Action.Payload)
	// Field codes are stripped from the Exec subtitle.
	assert.Equal(t, "/opt/safari/safari", results[0].Subtitle)
	assert.Greater(t, results[0].Score, 0.0)
}

// TestProvider_EmptyQuery tests that an empty query yields nothing
func TestProvider_EmptyQuery(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "safari.desktop", safariDesktop)

	p := New([]string{dir})
	defer p.Close()

	assert.Empty(t, collect(t, p, "  "))
}

// TestProvider_MissingDirSkipped tests that absent directories are not errors
func TestProvider_MissingDirSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "safari.desktop", safariDesktop)

	p := New([]string{filepath.Join(dir, "does-not-exist"), dir})
	defer p.Close()

	assert.Len(t, collect(t, p, "safari"), 1)
}

// TestProvider_CacheReused tests that a second search hits the cache
func TestProvider_CacheReused(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "safari.desktop", safariDesktop)

	p := New([]string{dir})
	defer p.Close()

	require.Len(t, collect(t, p, "safari"), 1)

	// Replace the scan cache to prove entries() prefers it.
	p.cache.Set(cacheKey, []entry{{name: "Cached App", path: "/cached"}}, 0)
	results := collect(t, p, "cached")
	require.Len(t, results, 1)
	assert.Equal(t, "Cached App", results[0].Title)
}

// TestParseDesktopFile_MainGroupOnly tests that action groups are ignored
func TestParseDesktopFile_MainGroupOnly(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "multi.desktop", `[Desktop Entry]
Name=Editor
Exec=/opt/editor

[Desktop Action new-window]
Name=New Window
Exec=/opt/editor --new-window
`)

	e, ok := parseDesktopFile(filepath.Join(dir, "multi.desktop"))
	require.True(t, ok)
	assert.Equal(t, "Editor", e.name)
	assert.Equal(t, "/opt/editor", e.exec)
}
