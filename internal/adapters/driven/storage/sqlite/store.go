package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quickcast-app/quickcast/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// Store is a SQLite-backed store for clipboard history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.quickcast/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".quickcast", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ClipboardStore returns a ClipboardStore interface backed by this store.
func (s *Store) ClipboardStore() driven.ClipboardStore {
	return &clipboardStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_clipboard.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Clipboard Store ====================

// clipboardStore implements driven.ClipboardStore.
type clipboardStore struct {
	store *Store
}

var _ driven.ClipboardStore = (*clipboardStore)(nil)

// Add records a clipboard entry. Re-copying identical content refreshes
// the existing row's timestamp instead of inserting a duplicate.
func (s *clipboardStore) Add(ctx context.Context, entry driven.ClipboardEntry) error {
	if entry.Content == "" {
		return nil
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CopiedAt.IsZero() {
		entry.CopiedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO clipboard_entries (id, content, copied_at)
		VALUES (?, ?, ?)
		ON CONFLICT(content) DO UPDATE SET
			copied_at = excluded.copied_at
	`, entry.ID, entry.Content, entry.CopiedAt)

	if err != nil {
		return fmt.Errorf("adding clipboard entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *clipboardStore) Recent(ctx context.Context, limit int) ([]driven.ClipboardEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, content, copied_at
		FROM clipboard_entries
		ORDER BY copied_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying clipboard entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search returns up to limit entries containing the query, newest first.
func (s *clipboardStore) Search(ctx context.Context, query string, limit int) ([]driven.ClipboardEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, content, copied_at
		FROM clipboard_entries
		WHERE content LIKE ? ESCAPE '\'
		ORDER BY copied_at DESC
		LIMIT ?
	`, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("searching clipboard entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Prune drops entries older than the cutoff.
func (s *clipboardStore) Prune(ctx context.Context, cutoff time.Time) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM clipboard_entries WHERE copied_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("pruning clipboard entries: %w", err)
	}
	return nil
}

// Close closes the underlying store.
func (s *clipboardStore) Close() error {
	return s.store.Close()
}

// scanEntries scans multiple clipboard entry rows.
func scanEntries(rows *sql.Rows) ([]driven.ClipboardEntry, error) {
	var entries []driven.ClipboardEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e driven.ClipboardEntry
		if err := rows.Scan(&e.ID, &e.Content, &e.CopiedAt); err != nil {
			return nil, fmt.Errorf("scanning clipboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clipboard entries: %w", err)
	}

	return entries, nil
}

// escapeLike escapes LIKE wildcards so queries match them literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
