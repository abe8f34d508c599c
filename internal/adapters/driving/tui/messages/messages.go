// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/quickcast-app/quickcast/internal/core/domain"
)

// ResultsDelivered carries one generation's accumulated ranked results.
// The query session drops stale generations before they reach the
// program, so the newest message always reflects the current query.
type ResultsDelivered struct {
	Gen     uint64
	Results []domain.Result
}

// QueryCompleted signals that every provider for the generation has
// finished or timed out.
type QueryCompleted struct {
	Gen uint64
}

// DispatchFinished carries the outcome of dispatching a result's action.
type DispatchFinished struct {
	Outcome domain.DispatchOutcome
	Err     error
}
