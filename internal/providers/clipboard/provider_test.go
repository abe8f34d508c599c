package clipboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

type stubStore struct {
	entries []driven.ClipboardEntry
	err     error

	gotQuery string
	gotLimit int
}

func (s *stubStore) Add(context.Context, driven.ClipboardEntry) error { return nil }
func (s *stubStore) Recent(context.Context, int) ([]driven.ClipboardEntry, error) {
	return s.entries, s.err
}
func (s *stubStore) Search(_ context.Context, query string, limit int) ([]driven.ClipboardEntry, error) {
	s.gotQuery = query
	s.gotLimit = limit
	return s.entries, s.err
}
func (s *stubStore) Prune(context.Context, time.Time) error { return nil }
func (s *stubStore) Close() error                           { return nil }

func collect(t *testing.T) func(results <-chan domain.Result, errs <-chan error) ([]domain.Result, error) {
	t.Helper()
	return func(results <-chan domain.Result, errs <-chan error) ([]domain.Result, error) {
		var out []domain.Result
		for r := range results {
			out = append(out, r)
		}
		var firstErr error
		for err := range errs {
			if firstErr == nil {
				firstErr = err
			}
		}
		return out, firstErr
	}
}

func TestSearch_EmitsHistoryEntries(t *testing.T) {
	copied := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	store := &stubStore{entries: []driven.ClipboardEntry{
		{ID: "c1", Content: "export PATH=$PATH:/usr/local/go/bin", CopiedAt: copied},
		{ID: "c2", Content: "go test ./...", CopiedAt: copied.Add(-time.Hour)},
	}}
	p := New(store)

	results, err := collect(t)(p.Search(context.Background(), "go"))

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "go", store.gotQuery)
	assert.Equal(t, maxResults, store.gotLimit)
	assert.Equal(t, domain.CategoryClipboardItem, results[0].Category)
	assert.Equal(t, domain.CopyText("export PATH=$PATH:/usr/local/go/bin"), results[0].Action)
	assert.Equal(t, "Mar 2 14:30", results[0].Subtitle)
	assert.Greater(t, results[0].Score, results[1].Score, "newer entries score higher")
}

func TestSearch_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("a", 200)
	store := &stubStore{entries: []driven.ClipboardEntry{
		{ID: "c1", Content: long, CopiedAt: time.Now()},
	}}
	p := New(store)

	results, err := collect(t)(p.Search(context.Background(), "aaa"))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, strings.Repeat("a", titleLimit)+"…", results[0].Title)
	assert.Equal(t, domain.CopyText(long), results[0].Action, "action keeps the full content")
}

func TestSearch_CollapsesWhitespaceInTitle(t *testing.T) {
	store := &stubStore{entries: []driven.ClipboardEntry{
		{ID: "c1", Content: "line one\n\tline two", CopiedAt: time.Now()},
	}}
	p := New(store)

	results, err := collect(t)(p.Search(context.Background(), "line"))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "line one line two", results[0].Title)
}

func TestSearch_StoreErrorPropagates(t *testing.T) {
	p := New(&stubStore{err: errors.New("database locked")})

	results, err := collect(t)(p.Search(context.Background(), "go"))

	assert.Empty(t, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database locked")
}

func TestSearch_EmptyQueryReturnsNothing(t *testing.T) {
	store := &stubStore{entries: []driven.ClipboardEntry{
		{ID: "c1", Content: "something", CopiedAt: time.Now()},
	}}
	p := New(store)

	results, err := collect(t)(p.Search(context.Background(), "  "))

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, store.gotQuery, "store is not queried for empty input")
}

func TestRecencyScore_Floors(t *testing.T) {
	assert.Equal(t, 1.0, recencyScore(0))
	assert.InDelta(t, 0.96, recencyScore(1), 1e-9)
	assert.Equal(t, 0.2, recencyScore(50))
}
