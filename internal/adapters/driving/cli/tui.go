package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quickcast-app/quickcast/internal/adapters/driving/tui"
	core "github.com/quickcast-app/quickcast/internal/core/services"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive palette",
	Long: `Open the interactive palette.

Type to search across all providers; the ranked list updates as you
type. Enter runs the highlighted result's action. Critical actions
(shut down, restart, ...) ask for confirmation first.

Controls:
  ↑/↓      - Navigate results
  Enter    - Run selected action
  Esc      - Clear query / quit
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if services == nil {
		return errors.New("services not configured")
	}

	app, err := tui.NewApp(&tui.Ports{Dispatcher: services.Dispatcher})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	// The sink needs the program's Send, so the session is wired after
	// program creation and before Run starts pumping messages.
	sink := tui.NewProgramSink(p.Send)
	ranker := core.NewRanker(services.Settings)
	aggregator := core.NewAggregator(services.Registry, ranker, services.Settings)
	session := core.NewQuerySession(aggregator, sink)
	defer session.Close()

	app.SetSession(session)
	if services.WireSession != nil {
		services.WireSession(session)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
