package driven

import (
	"context"
	"time"
)

// ClipboardEntry is one recorded clipboard item.
type ClipboardEntry struct {
	// ID uniquely identifies the entry.
	ID string

	// Content is the copied text.
	Content string

	// CopiedAt is when the entry was recorded.
	CopiedAt time.Time
}

// ClipboardStore persists clipboard history for the clipboard provider.
// Backed by SQLite.
type ClipboardStore interface {
	// Add records a clipboard entry. Re-copying identical content
	// refreshes the existing entry's timestamp instead of duplicating.
	Add(ctx context.Context, entry ClipboardEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]ClipboardEntry, error)

	// Search returns up to limit entries whose content contains the
	// query, newest first.
	Search(ctx context.Context, query string, limit int) ([]ClipboardEntry, error)

	// Prune drops entries older than the cutoff.
	Prune(ctx context.Context, cutoff time.Time) error

	// Close releases the underlying storage.
	Close() error
}
