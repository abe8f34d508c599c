package services

import (
	"context"
	"sync"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/core/ports/driving"
	"github.com/quickcast-app/quickcast/internal/logger"
)

// Ensure QuerySession implements the interface.
var _ driving.QuerySession = (*QuerySession)(nil)

// QuerySession owns the generation counter and the cancellation of
// superseded generations. It is the only writer of the counter; the
// aggregator and providers merely read it through the staleness check.
//
// Deliveries to the sink are serialized and stale generations are dropped
// before the sink ever sees them, so the presentation layer only observes
// the most recent query's results.
type QuerySession struct {
	aggregator *Aggregator
	sink       driven.ResultSink

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup

	// deliverMu serializes sink calls across generations.
	deliverMu sync.Mutex
}

// NewQuerySession creates a session delivering to the given sink.
func NewQuerySession(aggregator *Aggregator, sink driven.ResultSink) *QuerySession {
	return &QuerySession{
		aggregator: aggregator,
		sink:       sink,
	}
}

// Submit starts a new generation for the query. Any in-flight generation
// is cancelled immediately; its stragglers are additionally dropped by
// the staleness check. Returns the new generation number without waiting
// for provider work.
func (s *QuerySession) Submit(query string) uint64 {
	// Taking deliverMu first keeps the generation bump ordered against
	// any sink call in flight: once Submit returns, no older
	// generation can reach the sink.
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	if s.closed {
		gen := s.gen
		s.mu.Unlock()
		return gen
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	logger.Debug("Session: generation %d started for query %q", gen, query)

	go func() {
		defer s.wg.Done()
		defer cancel()
		s.aggregator.Run(ctx, gen, query, s.deliver, s.complete)
	}()

	return gen
}

// Generation returns the current generation number.
func (s *QuerySession) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Cancel cancels the in-flight generation, if any. The generation number
// is not advanced; results already delivered stay valid.
func (s *QuerySession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Close cancels any in-flight generation and waits for it to wind down.
// Subsequent Submit calls are no-ops.
func (s *QuerySession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// deliver forwards a ranked snapshot to the sink unless the generation
// has been superseded.
func (s *QuerySession) deliver(gen uint64, results []domain.Result) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if s.stale(gen) {
		logger.Debug("Session: dropping stale delivery for generation %d", gen)
		return
	}
	s.sink.Deliver(gen, results)
}

// complete forwards the generation-complete signal unless superseded.
func (s *QuerySession) complete(gen uint64) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if s.stale(gen) {
		logger.Debug("Session: dropping stale completion for generation %d", gen)
		return
	}
	s.sink.Complete(gen)
}

// stale reports whether gen has been superseded by a newer Submit.
func (s *QuerySession) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.gen
}
