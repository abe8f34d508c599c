package driven

import "context"

// Execution collaborators invoked by the dispatcher. Each port wraps one
// OS-level effect; implementations live in internal/adapters/driven/exec.

// AppLauncher launches installed applications.
type AppLauncher interface {
	// Launch starts the application at the given path.
	Launch(ctx context.Context, path string) error
}

// Opener opens files and URLs with the system default handler.
type Opener interface {
	// OpenFile opens the file at path.
	OpenFile(ctx context.Context, path string) error

	// OpenURL opens the URL in the default browser.
	OpenURL(ctx context.Context, url string) error
}

// ClipboardWriter writes text to the system clipboard.
type ClipboardWriter interface {
	// Write replaces the clipboard contents with text.
	Write(ctx context.Context, text string) error
}

// PanelOpener opens named system settings panels.
type PanelOpener interface {
	// OpenPanel opens the panel identified by name (e.g. "network").
	OpenPanel(ctx context.Context, name string) error
}

// PowerController executes system-critical power and session actions.
// Every method is irreversible or disruptive; the dispatcher only calls
// them after a completed confirmation handshake.
type PowerController interface {
	EmptyTrash(ctx context.Context) error
	Sleep(ctx context.Context) error
	LockScreen(ctx context.Context) error
	LogOut(ctx context.Context) error
	Restart(ctx context.Context) error
	ShutDown(ctx context.Context) error
}

// MeetingController drives the external meeting capture service.
type MeetingController interface {
	// Start begins a meeting session identified by sessionID.
	Start(ctx context.Context, sessionID string) error

	// Stop ends the active meeting session.
	Stop(ctx context.Context, sessionID string) error

	// Summarise produces a summary of the active session.
	Summarise(ctx context.Context, sessionID string) (string, error)

	// EnrollSpeaker records a voice profile for the named speaker.
	EnrollSpeaker(ctx context.Context, name string) error
}

// CommandFunc is the behaviour bound to a run_command label.
type CommandFunc func(ctx context.Context) error
