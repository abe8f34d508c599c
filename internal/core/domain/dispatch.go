package domain

import "time"

// DispatchStatus classifies the outcome of dispatching an action.
type DispatchStatus string

// Dispatch statuses.
const (
	// StatusExecuted means the action's effect was produced.
	StatusExecuted DispatchStatus = "executed"

	// StatusRequiresConfirmation means the action is critical and a
	// confirmation handshake must complete before it executes.
	StatusRequiresConfirmation DispatchStatus = "requires_confirmation"

	// StatusFailed means the action did not execute.
	StatusFailed DispatchStatus = "failed"
)

// DispatchOutcome reports the result of dispatching one action.
type DispatchOutcome struct {
	// Status classifies the outcome.
	Status DispatchStatus

	// Action echoes the dispatched action. For
	// StatusRequiresConfirmation it is the action that must be passed
	// to ConfirmAndDispatch.
	Action Action

	// Reason describes a failure; empty unless Status is StatusFailed.
	Reason string
}

// Executed returns true if the action's effect was produced.
func (o DispatchOutcome) Executed() bool {
	return o.Status == StatusExecuted
}

// MeetingState is the dispatcher's meeting state machine state.
type MeetingState string

// Meeting states.
const (
	// MeetingIdle means no meeting is active.
	MeetingIdle MeetingState = "idle"

	// MeetingInProgress means a meeting session is active.
	MeetingInProgress MeetingState = "in_meeting"
)

// String returns the string representation.
func (s MeetingState) String() string {
	return string(s)
}

// PendingConfirmation holds the single outstanding critical action awaiting
// confirmation. A confirmation is single-use, expires after its TTL, and is
// replaced wholesale when a different critical action is dispatched, so a
// stale confirmation can never be replayed.
type PendingConfirmation struct {
	// Action is the critical action awaiting confirmation.
	Action Action

	// Expiry is the instant after which the confirmation is void.
	Expiry time.Time
}

// ExpiredAt returns true if the confirmation is void at the given instant.
func (p PendingConfirmation) ExpiredAt(now time.Time) bool {
	return now.After(p.Expiry)
}

// Matches returns true if the confirmed action is the pending one.
func (p PendingConfirmation) Matches(a Action) bool {
	return p.Action == a
}
