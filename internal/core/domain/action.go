package domain

// ActionKind identifies an action variant.
type ActionKind string

// Action variants.
const (
	// Informational / idempotent actions.

	// ActionOpenApp launches an application by path.
	ActionOpenApp ActionKind = "open_app"

	// ActionOpenFile opens a file with the default handler.
	ActionOpenFile ActionKind = "open_file"

	// ActionOpenURL opens a URL in the default browser.
	ActionOpenURL ActionKind = "open_url"

	// ActionCopyText copies text to the system clipboard.
	ActionCopyText ActionKind = "copy_text"

	// ActionOpenPanel opens a named system settings panel.
	ActionOpenPanel ActionKind = "open_panel"

	// ActionPerformSearch re-enters the query session with a new query.
	ActionPerformSearch ActionKind = "perform_search"

	// ActionRunCommand runs a provider-registered labelled command.
	ActionRunCommand ActionKind = "run_command"

	// System-critical actions. Irreversible or disruptive; dispatch
	// requires an explicit confirmation handshake.

	// ActionEmptyTrash empties the system trash.
	ActionEmptyTrash ActionKind = "empty_trash"

	// ActionSleep puts the machine to sleep.
	ActionSleep ActionKind = "sleep"

	// ActionLockScreen locks the screen.
	ActionLockScreen ActionKind = "lock_screen"

	// ActionLogOut logs the current user out.
	ActionLogOut ActionKind = "log_out"

	// ActionRestart restarts the machine.
	ActionRestart ActionKind = "restart"

	// ActionShutDown shuts the machine down.
	ActionShutDown ActionKind = "shut_down"

	// Meeting-control actions. Ordering is enforced by the dispatcher's
	// meeting state machine.

	// ActionStartMeeting starts a meeting recording session.
	ActionStartMeeting ActionKind = "start_meeting"

	// ActionStopMeeting stops the active meeting session.
	ActionStopMeeting ActionKind = "stop_meeting"

	// ActionMeetingSummary generates a summary of the active meeting.
	ActionMeetingSummary ActionKind = "meeting_summary"

	// ActionEnrollSpeaker enrols a speaker voice profile.
	ActionEnrollSpeaker ActionKind = "enroll_speaker"
)

// ActionClass partitions action kinds by dispatch policy.
type ActionClass int

const (
	// ClassInformational actions are idempotent and execute immediately.
	ClassInformational ActionClass = iota

	// ClassCritical actions are irreversible and require confirmation.
	ClassCritical

	// ClassMeeting actions are subject to the meeting state machine.
	ClassMeeting
)

// Class returns the dispatch policy class for the action kind.
func (k ActionKind) Class() ActionClass {
	switch k {
	case ActionEmptyTrash, ActionSleep, ActionLockScreen,
		ActionLogOut, ActionRestart, ActionShutDown:
		return ClassCritical
	case ActionStartMeeting, ActionStopMeeting,
		ActionMeetingSummary, ActionEnrollSpeaker:
		return ClassMeeting
	default:
		return ClassInformational
	}
}

// IsValid returns true if the kind is recognised.
func (k ActionKind) IsValid() bool {
	switch k {
	case ActionOpenApp, ActionOpenFile, ActionOpenURL, ActionCopyText,
		ActionOpenPanel, ActionPerformSearch, ActionRunCommand,
		ActionEmptyTrash, ActionSleep, ActionLockScreen, ActionLogOut,
		ActionRestart, ActionShutDown,
		ActionStartMeeting, ActionStopMeeting, ActionMeetingSummary,
		ActionEnrollSpeaker:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ActionKind) String() string {
	return string(k)
}

// Action is the fully self-describing side effect attached to a result.
// Exactly one payload field is populated, determined by Kind; executing an
// action requires no lookup beyond its own fields. Action is comparable so
// the confirmation handshake can match a confirmed action against the
// pending one.
type Action struct {
	// Kind selects the variant.
	Kind ActionKind

	// Payload is the variant's single argument: an application or file
	// path, a URL, clipboard text, a panel name, a search query, a
	// command label, or a speaker name. Empty for variants that take
	// no argument (power controls, meeting start/stop/summary).
	Payload string
}

// Constructors, one per variant that carries a payload.

// OpenApp returns an action launching the application at path.
func OpenApp(path string) Action { return Action{Kind: ActionOpenApp, Payload: path} }

// OpenFile returns an action opening the file at path.
func OpenFile(path string) Action { return Action{Kind: ActionOpenFile, Payload: path} }

// OpenURL returns an action opening url in the default browser.
func OpenURL(url string) Action { return Action{Kind: ActionOpenURL, Payload: url} }

// CopyText returns an action copying text to the clipboard.
func CopyText(text string) Action { return Action{Kind: ActionCopyText, Payload: text} }

// OpenPanel returns an action opening the named system panel.
func OpenPanel(panel string) Action { return Action{Kind: ActionOpenPanel, Payload: panel} }

// PerformSearch returns an action chaining into a new query.
func PerformSearch(query string) Action {
	return Action{Kind: ActionPerformSearch, Payload: query}
}

// RunCommand returns an action invoking the registered command label.
func RunCommand(label string) Action { return Action{Kind: ActionRunCommand, Payload: label} }

// EnrollSpeaker returns an action enrolling a speaker profile by name.
func EnrollSpeaker(name string) Action {
	return Action{Kind: ActionEnrollSpeaker, Payload: name}
}
