package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Aggregation errors.

	// ErrProviderTimeout indicates a provider exceeded its time budget.
	// Non-fatal: the provider's partial output is kept, the rest dropped.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrUnknownProvider indicates a provider ID is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrStaleGeneration indicates output was produced for a superseded
	// query generation and has been discarded.
	ErrStaleGeneration = errors.New("stale generation")

	// Dispatch errors.

	// ErrInvalidState indicates a meeting action was dispatched out of
	// order. The state machine is left unchanged.
	ErrInvalidState = errors.New("invalid meeting state")

	// ErrConfirmationRequired indicates a critical action was confirmed
	// without a live matching confirmation handshake.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrConfirmationExpired indicates the confirmation handshake
	// outlived its TTL and must be restarted.
	ErrConfirmationExpired = errors.New("confirmation expired")

	// ErrExecutionFailed indicates the downstream execution collaborator
	// failed. Reported to the caller; no retry by default.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrUnsupportedAction indicates an action kind with no executor.
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrUnknownCommand indicates a run_command label with no
	// registered behaviour.
	ErrUnknownCommand = errors.New("unknown command")
)
