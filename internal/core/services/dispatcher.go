package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/core/ports/driving"
	"github.com/quickcast-app/quickcast/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driving.Dispatcher = (*Dispatcher)(nil)

// Executors groups the driven collaborators the dispatcher delegates to.
// Any field may be nil; dispatching an action whose executor is missing
// fails with domain.ErrUnsupportedAction instead of panicking.
type Executors struct {
	Launcher  driven.AppLauncher
	Opener    driven.Opener
	Clipboard driven.ClipboardWriter
	Panels    driven.PanelOpener
	Power     driven.PowerController
	Meeting   driven.MeetingController
}

// Dispatcher executes actions attached to selected results.
//
// Critical actions go through a two-phase confirmation handshake backed
// by a single pending-confirmation slot: arming a new confirmation
// replaces the old one, confirmations expire after the configured TTL,
// and a completed confirmation is consumed before the effect runs, so it
// can never fire twice.
//
// Meeting actions are validated against a two-state machine
// (Idle, InMeeting). A failed transition leaves the state unchanged.
type Dispatcher struct {
	exec       Executors
	confirmTTL time.Duration

	// now is swappable for confirmation-expiry tests.
	now func() time.Time

	// meetingMu serializes meeting state transitions end to end.
	meetingMu sync.Mutex

	mu        sync.Mutex
	pending   *domain.PendingConfirmation
	meeting   domain.MeetingState
	sessionID string
	commands  map[string]driven.CommandFunc
	search    driving.QuerySession
}

// NewDispatcher creates a dispatcher with the given executors.
func NewDispatcher(exec Executors, settings domain.Settings) *Dispatcher {
	ttl := settings.ConfirmationTTL
	if ttl <= 0 {
		ttl = domain.DefaultConfirmationTTL
	}
	return &Dispatcher{
		exec:       exec,
		confirmTTL: ttl,
		now:        time.Now,
		meeting:    domain.MeetingIdle,
		commands:   make(map[string]driven.CommandFunc),
	}
}

// SetSession wires the query session used by perform_search actions.
// Set after construction because the session's sink is typically built
// around the same presentation layer that drives the dispatcher.
func (d *Dispatcher) SetSession(session driving.QuerySession) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.search = session
}

// RegisterCommand binds a run_command label to its behaviour.
func (d *Dispatcher) RegisterCommand(label string, fn func(ctx context.Context) error) error {
	if label == "" || fn == nil {
		return fmt.Errorf("%w: command label and behaviour are required", domain.ErrInvalidInput)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.commands[label]; ok {
		return fmt.Errorf("%w: command %q", domain.ErrAlreadyExists, label)
	}
	d.commands[label] = fn
	return nil
}

// MeetingState reports the current meeting state machine state.
func (d *Dispatcher) MeetingState() domain.MeetingState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.meeting
}

// Dispatch executes the action, or arms the confirmation handshake for
// critical actions. The returned error is non-nil exactly when the
// outcome status is StatusFailed.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.Action) (domain.DispatchOutcome, error) {
	if !action.Kind.IsValid() {
		return d.failed(action, fmt.Errorf("%w: %q", domain.ErrUnsupportedAction, action.Kind))
	}

	logger.Debug("Dispatch: %s", action.Kind)

	switch action.Kind.Class() {
	case domain.ClassCritical:
		return d.armConfirmation(action), nil
	case domain.ClassMeeting:
		return d.dispatchMeeting(ctx, action)
	default:
		return d.dispatchInformational(ctx, action)
	}
}

// ConfirmAndDispatch completes the confirmation handshake and executes
// the critical action exactly once per confirmation.
func (d *Dispatcher) ConfirmAndDispatch(ctx context.Context, action domain.Action) (domain.DispatchOutcome, error) {
	if action.Kind.Class() != domain.ClassCritical {
		// Non-critical actions never have a handshake to complete.
		return d.failed(action, fmt.Errorf("%w: %q is not a critical action",
			domain.ErrInvalidInput, action.Kind))
	}

	if err := d.consumeConfirmation(action); err != nil {
		return d.failed(action, err)
	}

	logger.Info("Dispatch: confirmed %s", action.Kind)
	if err := d.executeCritical(ctx, action); err != nil {
		return d.failed(action, err)
	}
	return domain.DispatchOutcome{Status: domain.StatusExecuted, Action: action}, nil
}

// armConfirmation replaces the pending-confirmation slot with this
// action and reports that confirmation is required. Selecting a
// different critical action in between voids the earlier confirmation.
func (d *Dispatcher) armConfirmation(action domain.Action) domain.DispatchOutcome {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = &domain.PendingConfirmation{
		Action: action,
		Expiry: d.now().Add(d.confirmTTL),
	}
	logger.Debug("Dispatch: %s requires confirmation (expires %v)",
		action.Kind, d.pending.Expiry)

	return domain.DispatchOutcome{
		Status: domain.StatusRequiresConfirmation,
		Action: action,
	}
}

// consumeConfirmation validates and clears the pending confirmation for
// the action. The slot is cleared before the effect runs, so a rapid
// second confirmation finds nothing to consume.
func (d *Dispatcher) consumeConfirmation(action domain.Action) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.pending == nil:
		return domain.ErrConfirmationRequired
	case !d.pending.Matches(action):
		return fmt.Errorf("%w: a different action is pending", domain.ErrConfirmationRequired)
	case d.pending.ExpiredAt(d.now()):
		d.pending = nil
		return domain.ErrConfirmationExpired
	}

	d.pending = nil
	return nil
}

// executeCritical delegates a confirmed critical action to the power
// controller.
func (d *Dispatcher) executeCritical(ctx context.Context, action domain.Action) error {
	if d.exec.Power == nil {
		return fmt.Errorf("%w: no power controller", domain.ErrUnsupportedAction)
	}

	var err error
	switch action.Kind {
	case domain.ActionEmptyTrash:
		err = d.exec.Power.EmptyTrash(ctx)
	case domain.ActionSleep:
		err = d.exec.Power.Sleep(ctx)
	case domain.ActionLockScreen:
		err = d.exec.Power.LockScreen(ctx)
	case domain.ActionLogOut:
		err = d.exec.Power.LogOut(ctx)
	case domain.ActionRestart:
		err = d.exec.Power.Restart(ctx)
	case domain.ActionShutDown:
		err = d.exec.Power.ShutDown(ctx)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedAction, action.Kind)
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrExecutionFailed, action.Kind, err)
	}
	return nil
}

// dispatchMeeting validates the action against the meeting state machine
// and executes it. The state only changes after the controller call
// succeeds, so a failed transition never corrupts the machine.
func (d *Dispatcher) dispatchMeeting(ctx context.Context, action domain.Action) (domain.DispatchOutcome, error) {
	if d.exec.Meeting == nil {
		return d.failed(action, fmt.Errorf("%w: no meeting controller", domain.ErrUnsupportedAction))
	}

	// Transitions are serialized so two concurrent starts cannot both
	// pass the Idle check.
	d.meetingMu.Lock()
	defer d.meetingMu.Unlock()

	d.mu.Lock()
	state := d.meeting
	sessionID := d.sessionID
	d.mu.Unlock()

	switch action.Kind {
	case domain.ActionStartMeeting:
		if state != domain.MeetingIdle {
			return d.failed(action, fmt.Errorf("%w: meeting already in progress", domain.ErrInvalidState))
		}
		newID := uuid.NewString()
		if err := d.exec.Meeting.Start(ctx, newID); err != nil {
			return d.failed(action, fmt.Errorf("%w: start meeting: %v", domain.ErrExecutionFailed, err))
		}
		d.setMeeting(domain.MeetingInProgress, newID)

	case domain.ActionStopMeeting:
		if state != domain.MeetingInProgress {
			return d.failed(action, fmt.Errorf("%w: no meeting in progress", domain.ErrInvalidState))
		}
		if err := d.exec.Meeting.Stop(ctx, sessionID); err != nil {
			return d.failed(action, fmt.Errorf("%w: stop meeting: %v", domain.ErrExecutionFailed, err))
		}
		d.setMeeting(domain.MeetingIdle, "")

	case domain.ActionMeetingSummary:
		if state != domain.MeetingInProgress {
			return d.failed(action, fmt.Errorf("%w: no meeting in progress", domain.ErrInvalidState))
		}
		summary, err := d.exec.Meeting.Summarise(ctx, sessionID)
		if err != nil {
			return d.failed(action, fmt.Errorf("%w: meeting summary: %v", domain.ErrExecutionFailed, err))
		}
		logger.Info("Dispatch: meeting summary generated (%d chars)", len(summary))

	case domain.ActionEnrollSpeaker:
		// Valid in either state.
		if err := d.exec.Meeting.EnrollSpeaker(ctx, action.Payload); err != nil {
			return d.failed(action, fmt.Errorf("%w: enroll speaker: %v", domain.ErrExecutionFailed, err))
		}

	default:
		return d.failed(action, fmt.Errorf("%w: %q", domain.ErrUnsupportedAction, action.Kind))
	}

	return domain.DispatchOutcome{Status: domain.StatusExecuted, Action: action}, nil
}

// setMeeting updates the state machine after a successful transition.
func (d *Dispatcher) setMeeting(state domain.MeetingState, sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.meeting = state
	d.sessionID = sessionID
	logger.Debug("Dispatch: meeting state -> %s", state)
}

// dispatchInformational delegates an idempotent action to its executor.
// It reports Executed or Failed, never a partial effect.
func (d *Dispatcher) dispatchInformational(ctx context.Context, action domain.Action) (domain.DispatchOutcome, error) {
	var err error

	switch action.Kind {
	case domain.ActionOpenApp:
		err = d.delegate(d.exec.Launcher != nil, func() error {
			return d.exec.Launcher.Launch(ctx, action.Payload)
		})
	case domain.ActionOpenFile:
		err = d.delegate(d.exec.Opener != nil, func() error {
			return d.exec.Opener.OpenFile(ctx, action.Payload)
		})
	case domain.ActionOpenURL:
		err = d.delegate(d.exec.Opener != nil, func() error {
			return d.exec.Opener.OpenURL(ctx, action.Payload)
		})
	case domain.ActionCopyText:
		err = d.delegate(d.exec.Clipboard != nil, func() error {
			return d.exec.Clipboard.Write(ctx, action.Payload)
		})
	case domain.ActionOpenPanel:
		err = d.delegate(d.exec.Panels != nil, func() error {
			return d.exec.Panels.OpenPanel(ctx, action.Payload)
		})
	case domain.ActionPerformSearch:
		err = d.performSearch(action.Payload)
	case domain.ActionRunCommand:
		err = d.runCommand(ctx, action.Payload)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrUnsupportedAction, action.Kind)
	}

	if err != nil {
		return d.failed(action, err)
	}
	return domain.DispatchOutcome{Status: domain.StatusExecuted, Action: action}, nil
}

// delegate runs fn if its executor is wired, wrapping failures.
func (d *Dispatcher) delegate(wired bool, fn func() error) error {
	if !wired {
		return fmt.Errorf("%w: executor not configured", domain.ErrUnsupportedAction)
	}
	if err := fn(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExecutionFailed, err)
	}
	return nil
}

// performSearch re-enters the query session with a new query, starting a
// new generation. This is how a result chains into a refined search.
func (d *Dispatcher) performSearch(query string) error {
	d.mu.Lock()
	session := d.search
	d.mu.Unlock()

	if session == nil {
		return fmt.Errorf("%w: no query session", domain.ErrUnsupportedAction)
	}
	gen := session.Submit(query)
	logger.Debug("Dispatch: chained into search %q (generation %d)", query, gen)
	return nil
}

// runCommand resolves a run_command label against the registry.
func (d *Dispatcher) runCommand(ctx context.Context, label string) error {
	d.mu.Lock()
	fn, ok := d.commands[label]
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCommand, label)
	}
	if err := fn(ctx); err != nil {
		return fmt.Errorf("%w: command %q: %v", domain.ErrExecutionFailed, label, err)
	}
	return nil
}

// failed builds a StatusFailed outcome that carries the error's message.
func (d *Dispatcher) failed(action domain.Action, err error) (domain.DispatchOutcome, error) {
	logger.Warn("Dispatch: %s failed: %v", action.Kind, err)
	return domain.DispatchOutcome{
		Status: domain.StatusFailed,
		Action: action,
		Reason: err.Error(),
	}, err
}
