package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// Ensure ClipboardStore implements the interface.
var _ driven.ClipboardStore = (*ClipboardStore)(nil)

// ClipboardStore is an in-memory implementation of driven.ClipboardStore.
// It backs tests and serves as a session-only fallback when the SQLite
// store cannot be opened.
type ClipboardStore struct {
	mu      sync.RWMutex
	entries []driven.ClipboardEntry
}

// NewClipboardStore creates a new in-memory clipboard store.
func NewClipboardStore() *ClipboardStore {
	return &ClipboardStore{}
}

// Add records a clipboard entry. Re-copying identical content refreshes
// the existing entry's timestamp.
func (s *ClipboardStore) Add(_ context.Context, entry driven.ClipboardEntry) error {
	if entry.Content == "" {
		return nil
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CopiedAt.IsZero() {
		entry.CopiedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Content == entry.Content {
			s.entries[i].CopiedAt = entry.CopiedAt
			return nil
		}
	}
	s.entries = append(s.entries, entry)
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *ClipboardStore) Recent(_ context.Context, limit int) ([]driven.ClipboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(limit, func(driven.ClipboardEntry) bool { return true }), nil
}

// Search returns up to limit entries whose content contains the query,
// newest first. Matching is case-insensitive.
func (s *ClipboardStore) Search(_ context.Context, query string, limit int) ([]driven.ClipboardEntry, error) {
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(limit, func(e driven.ClipboardEntry) bool {
		return strings.Contains(strings.ToLower(e.Content), needle)
	}), nil
}

// Prune drops entries older than the cutoff.
func (s *ClipboardStore) Prune(_ context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.CopiedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}

// Close is a no-op for the in-memory store.
func (s *ClipboardStore) Close() error {
	return nil
}

// collect must be called with the lock held.
func (s *ClipboardStore) collect(limit int, match func(driven.ClipboardEntry) bool) []driven.ClipboardEntry {
	matched := make([]driven.ClipboardEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if match(e) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CopiedAt.After(matched[j].CopiedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}
