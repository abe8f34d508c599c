package clipboard

import (
	"context"
	"time"

	atotto "github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/logger"
)

const (
	// defaultPollInterval is how often the clipboard is sampled.
	defaultPollInterval = time.Second

	// defaultRetention is how long history entries are kept.
	defaultRetention = 7 * 24 * time.Hour
)

// Recorder samples the system clipboard and records changes into the
// history store. Run it once per process; it prunes old entries as it
// goes.
type Recorder struct {
	store     driven.ClipboardStore
	interval  time.Duration
	retention time.Duration

	// read is swappable for tests.
	read func() (string, error)

	// now is swappable for tests.
	now func() time.Time
}

// NewRecorder creates a recorder over the given store.
func NewRecorder(store driven.ClipboardStore) *Recorder {
	return &Recorder{
		store:     store,
		interval:  defaultPollInterval,
		retention: defaultRetention,
		read:      atotto.ReadAll,
		now:       time.Now,
	}
}

// Run samples the clipboard until ctx is cancelled. Read errors are
// logged and skipped so a headless environment degrades to an empty
// history instead of killing the loop.
func (r *Recorder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			last = r.sample(ctx, last)
		}
	}
}

// sample reads the clipboard once and records any change. It returns
// the content to compare the next sample against.
func (r *Recorder) sample(ctx context.Context, last string) string {
	content, err := r.read()
	if err != nil {
		logger.Debug("Clipboard read failed: %v", err)
		return last
	}
	if content == "" || content == last {
		return last
	}

	now := r.now()
	entry := driven.ClipboardEntry{
		ID:       uuid.NewString(),
		Content:  content,
		CopiedAt: now,
	}
	if err := r.store.Add(ctx, entry); err != nil {
		logger.Warn("Recording clipboard entry failed: %v", err)
		return last
	}
	if err := r.store.Prune(ctx, now.Add(-r.retention)); err != nil {
		logger.Warn("Pruning clipboard history failed: %v", err)
	}
	return content
}
