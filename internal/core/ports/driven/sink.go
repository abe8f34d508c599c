package driven

import "github.com/quickcast-app/quickcast/internal/core/domain"

// ResultSink is the presentation collaborator. The query session pushes
// ranked results into it as they accumulate; the sink renders them.
//
// Calls are serialized per session and tagged with the generation they
// belong to. A sink only ever observes the most recent generation: the
// session drops stale deliveries before they reach it.
type ResultSink interface {
	// Deliver replaces the displayed list with the ranked results for
	// the generation. Called incrementally as provider batches arrive.
	Deliver(gen uint64, results []domain.Result)

	// Complete signals that every provider for the generation has
	// finished or timed out, so any loading indicator can stop.
	Complete(gen uint64)
}
