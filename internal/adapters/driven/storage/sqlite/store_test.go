package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewStore(tmpDir)

	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, filepath.Join(tmpDir, "history.db"), store.Path())
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Close())

	// Reopening must not re-run applied migrations
	store2, err := NewStore(tmpDir)
	require.NoError(t, err)
	defer store2.Close()
}

func TestClipboardStore_AddAndRecent(t *testing.T) {
	ctx := context.Background()
	clips := newTestStore(t).ClipboardStore()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c1", Content: "first", CopiedAt: base}))
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c2", Content: "second", CopiedAt: base.Add(time.Minute)}))

	entries, err := clips.Recent(ctx, 10)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Content, "newest first")
	assert.Equal(t, "first", entries[1].Content)
}

func TestClipboardStore_AddGeneratesIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	clips := newTestStore(t).ClipboardStore()

	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{Content: "hello"}))

	entries, err := clips.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].CopiedAt.IsZero())
}

func TestClipboardStore_RecopyRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	clips := newTestStore(t).ClipboardStore()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c1", Content: "same", CopiedAt: base}))
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c2", Content: "other", CopiedAt: base.Add(time.Minute)}))

	// Copy "same" again, later
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c3", Content: "same", CopiedAt: base.Add(2 * time.Minute)}))

	entries, err := clips.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2, "no duplicate row for identical content")
	assert.Equal(t, "same", entries[0].Content, "refreshed entry is newest")
	assert.Equal(t, "c1", entries[0].ID, "original ID is kept")
}

func TestClipboardStore_AddIgnoresEmptyContent(t *testing.T) {
	ctx := context.Background()
	clips := newTestStore(t).ClipboardStore()

	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{Content: ""}))

	entries, err := clips.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClipboardStore_Search(t *testing.T) {
	ctx := context.Background()
	clips := newTestStore(t).ClipboardStore()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c1", Content: "go test ./...", CopiedAt: base}))
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c2", Content: "git status", CopiedAt: base.Add(time.Minute)}))
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c3", Content: "go vet ./...", CopiedAt: base.Add(2 * time.Minute)}))

	entries, err := clips.Search(ctx, "go ", 10)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "go vet ./...", entries[0].Content, "newest first")
	assert.Equal(t, "go test ./...", entries[1].Content)
}

func TestClipboardStore_SearchEscapesWildcards(t *testing.T) {
	ctx := context.Background()
	clips := newTestStore(t).ClipboardStore()

	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c1", Content: "100% done"}))
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "c2", Content: "100 percent done"}))

	entries, err := clips.Search(ctx, "100%", 10)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "100% done", entries[0].Content)
}

func TestClipboardStore_SearchRespectsLimit(t *testing.T) {
	ctx := context.Background()
	clips := newTestStore(t).ClipboardStore()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{
			Content:  "entry " + string(rune('a'+i)),
			CopiedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := clips.Search(ctx, "entry", 3)

	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestClipboardStore_Prune(t *testing.T) {
	ctx := context.Background()
	clips := newTestStore(t).ClipboardStore()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "old", Content: "old", CopiedAt: base.Add(-48 * time.Hour)}))
	require.NoError(t, clips.Add(ctx, driven.ClipboardEntry{ID: "new", Content: "new", CopiedAt: base}))

	require.NoError(t, clips.Prune(ctx, base.Add(-24*time.Hour)))

	entries, err := clips.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Content)
}
