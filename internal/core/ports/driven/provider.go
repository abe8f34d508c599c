package driven

import (
	"context"

	"github.com/quickcast-app/quickcast/internal/core/domain"
)

// Provider produces candidate results for a query.
// Each provider type (applications, files, clipboard, etc.) implements
// this interface.
//
// Contract:
//
//   - Search must honour ctx cancellation promptly. Results produced
//     after cancellation are dropped by the aggregator, not treated as
//     an error.
//   - The aggregator imposes a per-provider timeout by deriving a
//     deadline context; a provider past its budget is abandoned for
//     that generation and its partial output kept.
//   - Search must be safe to invoke concurrently for different
//     generations. No generation-scoped mutable state may survive a
//     call.
//   - An error on the error channel means the provider contributes
//     nothing further for that generation. It never aborts other
//     providers or the generation itself.
type Provider interface {
	// ID returns the provider identifier used for registration,
	// enable/disable configuration, and logging.
	ID() string

	// Search streams candidate results for the query. Both channels
	// are closed when the provider is done. At most one error is sent.
	Search(ctx context.Context, query string) (<-chan domain.Result, <-chan error)
}

// StreamResults adapts a precomputed result slice to the Search channel
// contract. Providers that match synchronously use this to stream their
// output while still observing cancellation between sends.
func StreamResults(ctx context.Context, results []domain.Result) (<-chan domain.Result, <-chan error) {
	out := make(chan domain.Result)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)
		for _, r := range results {
			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errs
}

// FailSearch adapts a provider failure to the Search channel contract.
func FailSearch(err error) (<-chan domain.Result, <-chan error) {
	out := make(chan domain.Result)
	errs := make(chan error, 1)
	errs <- err
	close(out)
	close(errs)
	return out, errs
}
