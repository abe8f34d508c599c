package services

import (
	"context"
	"errors"
	"sync"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/core/ports/driving"
	"github.com/quickcast-app/quickcast/internal/logger"
)

// Aggregator fans one query generation out to every enabled provider,
// applies per-provider timeouts, and merges batches through the ranker as
// they arrive. It holds no cross-generation state; each Run call is
// self-contained.
type Aggregator struct {
	registry driving.ProviderRegistry
	ranker   *Ranker
	settings domain.Settings
}

// NewAggregator creates an aggregator over the registered providers.
func NewAggregator(
	registry driving.ProviderRegistry,
	ranker *Ranker,
	settings domain.Settings,
) *Aggregator {
	return &Aggregator{
		registry: registry,
		ranker:   ranker,
		settings: settings,
	}
}

// providerBatch is one provider's partial output plus its origin, for
// logging.
type providerBatch struct {
	providerID string
	results    []domain.Result
}

// Run executes one generation: it invokes every enabled provider
// concurrently with a per-provider deadline, forwards each arriving batch
// through the ranker, and calls deliver with the re-ranked accumulated
// list. When all providers have finished or timed out it calls complete.
//
// Run blocks until the generation is done or ctx is cancelled. Staleness
// checks are the caller's concern (the query session drops deliveries for
// superseded generations).
func (a *Aggregator) Run(
	ctx context.Context,
	gen uint64,
	query string,
	deliver func(gen uint64, results []domain.Result),
	complete func(gen uint64),
) {
	logger.Section("Query Aggregation")
	logger.Debug("Generation %d: query=%q", gen, query)

	providers := a.enabledProviders()
	logger.Debug("Generation %d: fanning out to %d providers", gen, len(providers))

	batches := make(chan providerBatch)

	var wg sync.WaitGroup
	for _, p := range providers {
		wg.Add(1)
		go func(p driven.Provider) {
			defer wg.Done()
			a.runProvider(ctx, gen, p, query, batches)
		}(p)
	}

	go func() {
		wg.Wait()
		close(batches)
	}()

	// Single-owner merge loop: the ranked set is only ever touched here.
	set := a.ranker.NewGeneration()
	for batch := range batches {
		snapshot := set.Add(batch.results)
		logger.Debug("Generation %d: +%d from %s, %d total",
			gen, len(batch.results), batch.providerID, set.Len())
		deliver(gen, snapshot)
	}

	logger.Info("Generation %d complete: %d results", gen, set.Len())
	complete(gen)
}

// runProvider drives a single provider within its time budget and
// forwards its output in small batches. Output arriving after the budget
// or after cancellation is dropped.
func (a *Aggregator) runProvider(
	ctx context.Context,
	gen uint64,
	p driven.Provider,
	query string,
	batches chan<- providerBatch,
) {
	pctx, cancel := context.WithTimeout(ctx, a.settings.ProviderTimeout)
	defer cancel()

	out, errs := p.Search(pctx, query)

	var pending []domain.Result
	flush := func() {
		if len(pending) == 0 {
			return
		}
		select {
		case batches <- providerBatch{providerID: p.ID(), results: pending}:
			pending = nil
		case <-ctx.Done():
		}
	}

	for {
		select {
		case res, ok := <-out:
			if !ok {
				flush()
				return
			}
			if res := a.sanitise(p.ID(), res); res != nil {
				pending = append(pending, *res)
			}
			// Coalesce whatever is immediately available so the
			// merge loop re-sorts per batch, not per result.
			if len(pending) >= providerBatchSize {
				flush()
			}

		case err, ok := <-errs:
			if !ok {
				// Closed; stop selecting on it.
				errs = nil
				continue
			}
			if err != nil {
				// Partial failure policy: this provider is done,
				// everything already forwarded is kept.
				logger.Warn("Provider %s failed for generation %d: %v", p.ID(), gen, err)
				flush()
				return
			}

		case <-pctx.Done():
			if errors.Is(pctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				logger.Warn("Provider %s: %v after %v (generation %d)",
					p.ID(), domain.ErrProviderTimeout, a.settings.ProviderTimeout, gen)
				flush()
			}
			return
		}
	}
}

// providerBatchSize bounds how many results accumulate before a flush.
const providerBatchSize = 8

// sanitise validates one provider result. Invalid results are logged and
// dropped; out-of-range scores are clamped rather than rejected.
func (a *Aggregator) sanitise(providerID string, res domain.Result) *domain.Result {
	if res.ID == "" || res.Title == "" {
		logger.Warn("Provider %s emitted result without id/title, dropping", providerID)
		return nil
	}
	if !res.Category.IsValid() {
		logger.Warn("Provider %s emitted unknown category %q, dropping", providerID, res.Category)
		return nil
	}
	if res.Score < 0 {
		res.Score = 0
	}
	if res.Score > 1 {
		res.Score = 1
	}
	return &res
}

// enabledProviders returns the registered providers minus disabled ones.
func (a *Aggregator) enabledProviders() []driven.Provider {
	all := a.registry.All()
	enabled := make([]driven.Provider, 0, len(all))
	for _, p := range all {
		if a.settings.ProviderEnabled(p.ID()) {
			enabled = append(enabled, p)
		}
	}
	return enabled
}
