package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcast-app/quickcast/internal/core/domain"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
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

// TestProvider_Search tests name matching under a root
func TestProvider_Search(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Safari Notes.md"))
	writeFile(t, filepath.Join(root, "docs", "recipes.txt"))
	writeFile(t, filepath.Join(root, "unrelated.bin"))

	p := New([]string{root})
	results := collect(t, p, "safari")

	require.Len(t, results, 1)
	assert.Equal(t, "Safari Notes.md", results[0].Title)
	assert.Equal(t, domain.CategoryFile, results[0].Category)
	assert.Equal(t, domain.ActionOpenFile, results[0].Action.Kind)
	assert.Equal(t, filepath.Join(root, "Safari Notes.md"), results[0].Action.Payload)
}

// TestProvider_HiddenEntriesSkipped tests dot-file and dot-dir pruning
func TestProvider_HiddenEntriesSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden-match"))
	writeFile(t, filepath.Join(root, ".git", "match"))
	writeFile(t, filepath.Join(root, "match.txt"))

	p := New([]string{root})
	results := collect(t, p, "match")

	require.Len(t, results, 1)
	assert.Equal(t, "match.txt", results[0].Title)
}

// TestProvider_DepthBounded tests the walk depth cap
func TestProvider_DepthBounded(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c", "d", "e")
	writeFile(t, filepath.Join(deep, "deep-match.txt"))
	writeFile(t, filepath.Join(root, "a", "shallow-match.txt"))

	p := New([]string{root})
	results := collect(t, p, "match")

	require.Len(t, results, 1)
	assert.Equal(t, "shallow-match.txt", results[0].Title)
}

// TestProvider_EmptyQuery tests the empty-query contract
func TestProvider_EmptyQuery(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "anything.txt"))

	p := New([]string{root})
	assert.Empty(t, collect(t, p, ""))
}

// TestProvider_CancelledContext tests prompt cancellation mid-walk
func TestProvider_CancelledContext(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		writeFile(t, filepath.Join(root, "dir", "file-match-"+string(rune('a'+i%26))+".txt"))
	}

	p := New([]string{root})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, errs := p.Search(ctx, "match")
	for range out {
	}
	<-errs // closed without deadlock
}

// TestProvider_MissingRoot tests that an absent root contributes nothing
func TestProvider_MissingRoot(t *testing.T) {
	p := New([]string{filepath.Join(t.TempDir(), "nope")})
	assert.Empty(t, collect(t, p, "anything"))
}
