package driving

import (
	"context"

	"github.com/quickcast-app/quickcast/internal/core/domain"
)

// Dispatcher executes the action attached to a selected result.
//
// Critical actions follow a two-phase handshake: Dispatch answers
// StatusRequiresConfirmation and arms a single-use, time-limited pending
// confirmation; only ConfirmAndDispatch for that same action produces the
// effect. Meeting actions are checked against the meeting state machine.
//
// The returned error is non-nil exactly when the outcome status is
// StatusFailed, and wraps the matching domain sentinel
// (ErrInvalidState, ErrConfirmationRequired, ErrExecutionFailed, ...).
type Dispatcher interface {
	// Dispatch executes the action or, for critical actions, arms the
	// confirmation handshake.
	Dispatch(ctx context.Context, action domain.Action) (domain.DispatchOutcome, error)

	// ConfirmAndDispatch completes the handshake and executes the
	// critical action, exactly once per confirmation.
	ConfirmAndDispatch(ctx context.Context, action domain.Action) (domain.DispatchOutcome, error)

	// MeetingState reports the current meeting state machine state.
	MeetingState() domain.MeetingState

	// RegisterCommand binds a run_command label to its behaviour.
	RegisterCommand(label string, fn func(ctx context.Context) error) error
}
