// Package tui implements the interactive palette using Bubbletea.
// A single query box fans out to the providers as the user types; the
// ranked list updates incrementally and Enter dispatches the selected
// result's action, with a confirmation prompt for critical actions.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickcast-app/quickcast/internal/adapters/driving/tui/keymap"
	"github.com/quickcast-app/quickcast/internal/adapters/driving/tui/messages"
	"github.com/quickcast-app/quickcast/internal/adapters/driving/tui/styles"
	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driving"
)

// maxVisibleResults bounds the rendered result list.
const maxVisibleResults = 12

// App is the palette model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keys   *keymap.KeyMap

	// input is the query box.
	input textinput.Model

	// spin runs while a generation is in flight.
	spin spinner.Model

	// results is the current generation's ranked list.
	results []domain.Result

	// gen is the generation the displayed results belong to.
	gen uint64

	// cursor is the highlighted result index.
	cursor int

	// loading is true until the current generation completes.
	loading bool

	// confirming holds the critical action awaiting the user's yes.
	confirming *domain.Action

	// confirmTitle is the result title shown in the prompt.
	confirmTitle string

	// status is a transient error or outcome line.
	status string

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the palette. The session may be wired afterwards via
// SetSession since its sink needs the running program.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil || ports.Dispatcher == nil {
		return nil, errors.New("creating app: dispatcher is required")
	}

	s := styles.DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Type to search…"
	input.Prompt = "› "
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		input:  input,
		spin:   spin,
	}, nil
}

// SetSession wires the query session after program creation.
func (a *App) SetSession(session driving.QuerySession) {
	a.ports.Session = session
}

// WithContext sets the context used for dispatching actions.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init starts the input cursor blink.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 8
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ResultsDelivered:
		// The session already drops stale generations; the guard only
		// orders deliveries that raced with a new Submit.
		if msg.Gen < a.gen {
			return a, nil
		}
		a.gen = msg.Gen
		a.results = msg.Results
		if a.cursor >= len(a.results) {
			a.cursor = 0
		}
		return a, nil

	case messages.QueryCompleted:
		if msg.Gen >= a.gen {
			a.loading = false
		}
		return a, nil

	case messages.DispatchFinished:
		return a.handleDispatchFinished(msg)

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	return a, nil
}

// handleKey routes key presses. A pending confirmation captures every
// key until answered.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	if a.confirming != nil {
		switch {
		case key.Matches(msg, a.keys.Confirm):
			action := *a.confirming
			a.confirming = nil
			return a, a.dispatchCmd(action, true)
		case key.Matches(msg, a.keys.Cancel):
			a.confirming = nil
			a.status = ""
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.results)-1 {
			a.cursor++
		}
		return a, nil

	case key.Matches(msg, a.keys.Select):
		if a.cursor < len(a.results) {
			r := a.results[a.cursor]
			a.status = ""
			return a, a.dispatchCmd(r.Action, false)
		}
		return a, nil

	case msg.Type == tea.KeyEsc:
		if a.input.Value() == "" {
			return a, tea.Quit
		}
		a.input.SetValue("")
		return a, a.submit("")
	}

	// Everything else edits the query
	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if after := a.input.Value(); after != before {
		return a, tea.Batch(cmd, a.submit(after))
	}
	return a, cmd
}

// submit starts a new generation for the query.
func (a *App) submit(query string) tea.Cmd {
	if a.ports.Session == nil {
		return nil
	}

	if strings.TrimSpace(query) == "" {
		a.ports.Session.Cancel()
		// Batches for the cancelled generation may already be queued;
		// advancing the local generation drops them on arrival.
		a.gen++
		a.results = nil
		a.cursor = 0
		a.loading = false
		return nil
	}

	a.gen = a.ports.Session.Submit(query)
	a.cursor = 0
	wasLoading := a.loading
	a.loading = true
	if !wasLoading {
		return a.spin.Tick
	}
	return nil
}

// dispatchCmd runs the action off the Update loop.
func (a *App) dispatchCmd(action domain.Action, confirm bool) tea.Cmd {
	return func() tea.Msg {
		var (
			outcome domain.DispatchOutcome
			err     error
		)
		if confirm {
			outcome, err = a.ports.Dispatcher.ConfirmAndDispatch(a.ctx, action)
		} else {
			outcome, err = a.ports.Dispatcher.Dispatch(a.ctx, action)
		}
		return messages.DispatchFinished{Outcome: outcome, Err: err}
	}
}

// handleDispatchFinished reacts to an action's outcome: quit on success,
// prompt on a required confirmation, report failures inline.
func (a *App) handleDispatchFinished(msg messages.DispatchFinished) (tea.Model, tea.Cmd) {
	switch msg.Outcome.Status {
	case domain.StatusExecuted:
		if msg.Outcome.Action.Kind == domain.ActionPerformSearch {
			return a, a.showChainedSearch(msg.Outcome.Action.Payload)
		}
		return a, tea.Quit

	case domain.StatusRequiresConfirmation:
		action := msg.Outcome.Action
		a.confirming = &action
		a.confirmTitle = a.titleFor(action)
		return a, nil

	default:
		if msg.Err != nil {
			a.status = msg.Err.Error()
		} else {
			a.status = msg.Outcome.Reason
		}
		return a, nil
	}
}

// showChainedSearch keeps the palette open after a perform_search
// dispatch. The dispatcher has already submitted the new generation;
// the palette shows the chained query and waits for its results.
func (a *App) showChainedSearch(query string) tea.Cmd {
	a.input.SetValue(query)
	a.input.CursorEnd()
	a.results = nil
	a.cursor = 0
	a.status = ""
	wasLoading := a.loading
	a.loading = true
	if !wasLoading {
		return a.spin.Tick
	}
	return nil
}

// titleFor finds the display title of the result carrying the action.
func (a *App) titleFor(action domain.Action) string {
	for _, r := range a.results {
		if r.Action == action {
			return r.Title
		}
	}
	return string(action.Kind)
}

// View renders the palette.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("QuickCast"))
	b.WriteString("\n")
	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n\n")

	if a.confirming != nil {
		b.WriteString(a.styles.Warning.Render(
			fmt.Sprintf("Really run %q? (y/n)", a.confirmTitle)))
		b.WriteString("\n")
		return b.String()
	}

	if a.loading {
		b.WriteString(a.spin.View())
		b.WriteString(a.styles.Muted.Render(" searching…"))
		b.WriteString("\n")
	}

	b.WriteString(a.renderResults())

	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render(a.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("↑/↓ navigate · enter run · esc clear · ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderResults() string {
	if len(a.results) == 0 {
		if !a.loading && a.input.Value() != "" {
			return a.styles.Muted.Render("No results.") + "\n"
		}
		return ""
	}

	var b strings.Builder
	limit := len(a.results)
	if limit > maxVisibleResults {
		limit = maxVisibleResults
	}

	for i := 0; i < limit; i++ {
		r := a.results[i]
		line := r.Title
		if r.Subtitle != "" {
			line += "  " + a.styles.Muted.Render(r.Subtitle)
		}
		badge := a.styles.Category.Render(string(r.Category))

		if i == a.cursor {
			b.WriteString(a.styles.Selected.Render("▸ " + line))
		} else {
			b.WriteString(a.styles.Normal.Render("  " + line))
		}
		b.WriteString("  ")
		b.WriteString(badge)
		b.WriteString("\n")
	}

	if len(a.results) > limit {
		b.WriteString(a.styles.Muted.Render(
			fmt.Sprintf("  … %d more", len(a.results)-limit)))
		b.WriteString("\n")
	}
	return b.String()
}
