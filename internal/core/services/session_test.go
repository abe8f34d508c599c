package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// mockSink implements driven.ResultSink and records everything it sees.
type mockSink struct {
	mu         sync.Mutex
	deliveries map[uint64][][]domain.Result
	completed  []uint64
}

func newMockSink() *mockSink {
	return &mockSink{deliveries: make(map[uint64][][]domain.Result)}
}

func (s *mockSink) Deliver(gen uint64, results []domain.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries[gen] = append(s.deliveries[gen], results)
}

func (s *mockSink) Complete(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = append(s.completed, gen)
}

func (s *mockSink) generations() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	gens := make([]uint64, 0, len(s.deliveries))
	for g := range s.deliveries {
		gens = append(gens, g)
	}
	return gens
}

func (s *mockSink) waitComplete(t *testing.T, gen uint64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		for _, g := range s.completed {
			if g == gen {
				s.mu.Unlock()
				return
			}
		}
		s.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("generation %d never completed", gen)
}

// TestQuerySession_GenerationsIncrease tests the monotonic counter
func TestQuerySession_GenerationsIncrease(t *testing.T) {
	sink := newMockSink()
	agg := newAggregator(t, domain.DefaultSettings(),
		&mockProvider{id: "apps", results: []domain.Result{appResult("a", "A", 0.5)}})
	session := NewQuerySession(agg, sink)
	defer session.Close()

	g1 := session.Submit("a")
	g2 := session.Submit("ab")

	assert.Equal(t, uint64(1), g1)
	assert.Equal(t, uint64(2), g2)
	assert.Equal(t, uint64(2), session.Generation())
}

// TestQuerySession_StaleGenerationDropped tests that rapid re-queries
// never leak an older generation's results to the sink
func TestQuerySession_StaleGenerationDropped(t *testing.T) {
	sink := newMockSink()
	settings := domain.DefaultSettings()
	settings.ProviderTimeout = 500 * time.Millisecond
	agg := newAggregator(t, settings,
		&mockProvider{id: "slow", delay: 80 * time.Millisecond,
			results: []domain.Result{appResult("old", "Old", 0.9)}},
	)
	session := NewQuerySession(agg, sink)
	defer session.Close()

	session.Submit("first")
	g2 := session.Submit("second") // supersedes before "first" emits

	sink.waitComplete(t, g2)

	for _, gen := range sink.generations() {
		assert.Equal(t, g2, gen, "only the latest generation may reach the sink")
	}
}

// TestQuerySession_CompleteSignalled tests the generation-complete signal
func TestQuerySession_CompleteSignalled(t *testing.T) {
	sink := newMockSink()
	agg := newAggregator(t, domain.DefaultSettings(),
		&mockProvider{id: "apps", results: []domain.Result{appResult("a", "A", 0.5)}})
	session := NewQuerySession(agg, sink)
	defer session.Close()

	gen := session.Submit("a")
	sink.waitComplete(t, gen)

	require.NotEmpty(t, sink.deliveries[gen])
	assert.Len(t, sink.deliveries[gen][0], 1)
}

// TestQuerySession_EmptyQueryStillFansOut tests that providers decide
// what an empty query means
func TestQuerySession_EmptyQueryStillFansOut(t *testing.T) {
	sink := newMockSink()
	suggestion := domain.Result{
		ID: "tip", Title: "Open settings", Category: domain.CategorySuggestion,
		Action: domain.OpenPanel("general"), Score: 0.5,
	}
	agg := newAggregator(t, domain.DefaultSettings(),
		&mockProvider{id: "suggestions", results: []domain.Result{suggestion}})
	session := NewQuerySession(agg, sink)
	defer session.Close()

	gen := session.Submit("")
	sink.waitComplete(t, gen)

	require.NotEmpty(t, sink.deliveries[gen])
	assert.Equal(t, "Open settings", sink.deliveries[gen][0][0].Title)
}

// TestQuerySession_SubmitAfterClose tests that a closed session ignores
// new queries
func TestQuerySession_SubmitAfterClose(t *testing.T) {
	sink := newMockSink()
	agg := newAggregator(t, domain.DefaultSettings(),
		&mockProvider{id: "apps", results: []domain.Result{appResult("a", "A", 0.5)}})
	session := NewQuerySession(agg, sink)

	gen := session.Submit("a")
	sink.waitComplete(t, gen)
	session.Close()

	assert.Equal(t, gen, session.Submit("b"))
	assert.Equal(t, gen, session.Generation())
}

// TestQuerySession_CancelStopsDelivery tests that Cancel tears down the
// in-flight generation without advancing the counter
func TestQuerySession_CancelStopsDelivery(t *testing.T) {
	sink := newMockSink()
	settings := domain.DefaultSettings()
	settings.ProviderTimeout = 5 * time.Second
	agg := newAggregator(t, settings, &mockProvider{id: "slow", block: true})
	session := NewQuerySession(agg, sink)
	defer session.Close()

	gen := session.Submit("x")
	session.Cancel()

	// The blocked provider unblocks on cancellation and the generation
	// winds down as complete for its own (still current) generation.
	sink.waitComplete(t, gen)
	assert.Equal(t, gen, session.Generation())
}

var _ driven.ResultSink = (*mockSink)(nil)
