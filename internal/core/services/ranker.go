package services

import (
	"sort"

	"github.com/quickcast-app/quickcast/internal/core/domain"
)

// Ranker normalizes provider-local scores and merges batches into one
// deterministic ordering. It is stateless; per-generation accumulation
// lives in the rankedSet it hands out.
type Ranker struct {
	settings domain.Settings
}

// NewRanker creates a ranker using the settings' category weights.
func NewRanker(settings domain.Settings) *Ranker {
	return &Ranker{settings: settings}
}

// NewGeneration returns an empty accumulator for one query generation.
func (r *Ranker) NewGeneration() *RankedSet {
	return &RankedSet{
		ranker: r,
		byKey:  make(map[domain.Key]scoredResult),
		limit:  r.settings.Limit(),
	}
}

// weightedScore applies the category weight to a raw provider score.
func (r *Ranker) weightedScore(res domain.Result) float64 {
	return res.Score * r.settings.Weight(res.Category)
}

// scoredResult pairs a result with its weighted score so re-sorts do not
// recompute weights.
type scoredResult struct {
	result   domain.Result
	weighted float64
}

// RankedSet accumulates one generation's results. It is owned by a single
// goroutine (the aggregator's merge loop) for its whole lifetime, so it
// needs no locking.
type RankedSet struct {
	ranker *Ranker
	byKey  map[domain.Key]scoredResult
	limit  int
}

// Add merges a batch into the set, deduplicating on (category, id) and
// keeping the higher-weighted instance, then returns the re-sorted
// ordering. Re-ranking is incremental: only the accumulated set is
// re-sorted, scoring is never restarted.
func (s *RankedSet) Add(batch []domain.Result) []domain.Result {
	for _, res := range batch {
		weighted := s.ranker.weightedScore(res)
		key := res.Key()
		if prev, ok := s.byKey[key]; ok && prev.weighted >= weighted {
			continue
		}
		s.byKey[key] = scoredResult{result: res, weighted: weighted}
	}
	return s.Ordered()
}

// Ordered returns the current ranking: weighted score descending, then
// category priority ascending, then title ascending. The order is a
// deterministic total order for equal inputs.
func (s *RankedSet) Ordered() []domain.Result {
	scored := make([]scoredResult, 0, len(s.byKey))
	for _, sr := range s.byKey {
		scored = append(scored, sr)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].weighted != scored[j].weighted {
			return scored[i].weighted > scored[j].weighted
		}
		pi, pj := scored[i].result.Category.Priority(), scored[j].result.Category.Priority()
		if pi != pj {
			return pi < pj
		}
		if scored[i].result.Title != scored[j].result.Title {
			return scored[i].result.Title < scored[j].result.Title
		}
		// Final disambiguation for identical titles across categories.
		return scored[i].result.ID < scored[j].result.ID
	})

	if s.limit > 0 && len(scored) > s.limit {
		scored = scored[:s.limit]
	}

	results := make([]domain.Result, len(scored))
	for i, sr := range scored {
		results[i] = sr.result
	}
	return results
}

// Len returns the number of accumulated distinct results.
func (s *RankedSet) Len() int {
	return len(s.byKey)
}
