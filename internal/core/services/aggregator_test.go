package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockProvider implements driven.Provider for testing. It optionally
// delays before emitting, fails outright, or blocks until cancelled.
type mockProvider struct {
	id      string
	results []domain.Result
	delay   time.Duration
	err     error
	block   bool
}

func (m *mockProvider) ID() string { return m.id }

func (m *mockProvider) Search(ctx context.Context, _ string) (<-chan domain.Result, <-chan error) {
	if m.err != nil {
		return driven.FailSearch(m.err)
	}
	if m.block {
		out := make(chan domain.Result)
		errs := make(chan error)
		go func() {
			<-ctx.Done()
			close(out)
			close(errs)
		}()
		return out, errs
	}
	if m.delay > 0 {
		out := make(chan domain.Result)
		errs := make(chan error, 1)
		go func() {
			defer close(out)
			defer close(errs)
			select {
			case <-time.After(m.delay):
			case <-ctx.Done():
				return
			}
			for _, r := range m.results {
				select {
				case out <- r:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out, errs
	}
	return driven.StreamResults(ctx, m.results)
}

// deliveryLog captures deliver/complete callbacks.
type deliveryLog struct {
	mu         sync.Mutex
	deliveries [][]domain.Result
	completed  []uint64
}

func (l *deliveryLog) deliver(_ uint64, results []domain.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deliveries = append(l.deliveries, results)
}

func (l *deliveryLog) complete(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.completed = append(l.completed, gen)
}

func (l *deliveryLog) last() []domain.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.deliveries) == 0 {
		return nil
	}
	return l.deliveries[len(l.deliveries)-1]
}

func newAggregator(t *testing.T, settings domain.Settings, providers ...driven.Provider) *Aggregator {
	t.Helper()
	registry := NewProviderRegistry()
	for _, p := range providers {
		require.NoError(t, registry.Register(p))
	}
	return NewAggregator(registry, NewRanker(settings), settings)
}

func appResult(id, title string, score float64) domain.Result {
	return domain.Result{
		ID:       id,
		Title:    title,
		Category: domain.CategoryApplication,
		Action:   domain.OpenApp("/apps/" + id),
		Score:    score,
	}
}

// TestAggregator_MergesAllProviders tests that every provider's results
// arrive and the generation completes
func TestAggregator_MergesAllProviders(t *testing.T) {
	settings := domain.DefaultSettings()
	agg := newAggregator(t, settings,
		&mockProvider{id: "apps", results: []domain.Result{appResult("safari", "Safari", 0.9)}},
		&mockProvider{id: "files", results: []domain.Result{{
			ID: "notes", Title: "Safari Notes", Category: domain.CategoryFile,
			Action: domain.OpenFile("/tmp/notes"), Score: 0.9,
		}}},
	)

	log := &deliveryLog{}
	agg.Run(context.Background(), 1, "saf", log.deliver, log.complete)

	require.Equal(t, []uint64{1}, log.completed)
	last := log.last()
	require.Len(t, last, 2)
	// Application weight (1.0) beats file weight (0.6) at equal raw score.
	assert.Equal(t, "Safari", last[0].Title)
}

// TestAggregator_SlowProviderTimesOut tests that a provider past its
// budget is abandoned while others still deliver (isolation)
func TestAggregator_SlowProviderTimesOut(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ProviderTimeout = 30 * time.Millisecond
	agg := newAggregator(t, settings,
		&mockProvider{id: "fast", results: []domain.Result{appResult("fast", "Fast", 0.5)}},
		&mockProvider{id: "slow", block: true},
	)

	log := &deliveryLog{}
	start := time.Now()
	agg.Run(context.Background(), 1, "x", log.deliver, log.complete)

	assert.Less(t, time.Since(start), time.Second)
	require.Equal(t, []uint64{1}, log.completed)
	require.Len(t, log.last(), 1)
	assert.Equal(t, "Fast", log.last()[0].Title)
}

// TestAggregator_LateResultsDropped tests that a provider streaming
// after its deadline contributes nothing
func TestAggregator_LateResultsDropped(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ProviderTimeout = 20 * time.Millisecond
	agg := newAggregator(t, settings,
		&mockProvider{id: "late", delay: 200 * time.Millisecond,
			results: []domain.Result{appResult("late", "Late", 0.9)}},
	)

	log := &deliveryLog{}
	agg.Run(context.Background(), 1, "x", log.deliver, log.complete)

	assert.Empty(t, log.last())
	assert.Equal(t, []uint64{1}, log.completed)
}

// TestAggregator_ProviderErrorIsIsolated tests the partial failure policy
func TestAggregator_ProviderErrorIsIsolated(t *testing.T) {
	settings := domain.DefaultSettings()
	agg := newAggregator(t, settings,
		&mockProvider{id: "broken", err: errors.New("index unavailable")},
		&mockProvider{id: "apps", results: []domain.Result{appResult("safari", "Safari", 0.9)}},
	)

	log := &deliveryLog{}
	agg.Run(context.Background(), 1, "saf", log.deliver, log.complete)

	require.Len(t, log.last(), 1)
	assert.Equal(t, "Safari", log.last()[0].Title)
	assert.Equal(t, []uint64{1}, log.completed)
}

// TestAggregator_DisabledProviderSkipped tests provider toggles
func TestAggregator_DisabledProviderSkipped(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.DisabledProviders = []string{"emoji"}
	agg := newAggregator(t, settings,
		&mockProvider{id: "emoji", results: []domain.Result{{
			ID: "smile", Title: "😄", Category: domain.CategoryEmoji,
			Action: domain.CopyText("😄"), Score: 1,
		}}},
	)

	log := &deliveryLog{}
	agg.Run(context.Background(), 1, "smile", log.deliver, log.complete)

	assert.Empty(t, log.last())
}

// TestAggregator_SanitisesResults tests that malformed provider output
// is dropped and scores are clamped
func TestAggregator_SanitisesResults(t *testing.T) {
	settings := domain.DefaultSettings()
	agg := newAggregator(t, settings,
		&mockProvider{id: "odd", results: []domain.Result{
			{ID: "", Title: "No ID", Category: domain.CategoryFile, Score: 0.5},
			{ID: "bad-cat", Title: "Bad", Category: domain.Category("bogus"), Score: 0.5},
			{ID: "hot", Title: "Hot", Category: domain.CategoryFile, Score: 3.5},
		}},
	)

	log := &deliveryLog{}
	agg.Run(context.Background(), 1, "x", log.deliver, log.complete)

	last := log.last()
	require.Len(t, last, 1)
	assert.Equal(t, "Hot", last[0].Title)
	assert.InDelta(t, 1.0, last[0].Score, 1e-9)
}

// TestAggregator_CancelledContextStops tests that cancellation ends the
// generation promptly
func TestAggregator_CancelledContextStops(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ProviderTimeout = 5 * time.Second
	agg := newAggregator(t, settings, &mockProvider{id: "slow", block: true})

	ctx, cancel := context.WithCancel(context.Background())
	log := &deliveryLog{}

	done := make(chan struct{})
	go func() {
		agg.Run(ctx, 1, "x", log.deliver, log.complete)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("aggregator did not stop after cancellation")
	}
}
