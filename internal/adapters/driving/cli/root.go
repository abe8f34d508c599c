// Package cli implements the quickcast command-line interface using cobra.
// Commands read their collaborators from a package-level Services value
// wired at startup by cmd/quickcast.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/core/ports/driving"
	"github.com/quickcast-app/quickcast/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services holds the wired collaborators the commands run against.
type Services struct {
	Registry    driving.ProviderRegistry
	Dispatcher  driving.Dispatcher
	Settings    domain.Settings
	ConfigStore driven.ConfigStore

	// WireSession hands a freshly created query session back to the
	// dispatcher so perform_search actions can reach it.
	WireSession func(driving.QuerySession)
}

// services holds the current wiring.
var services *Services

// SetServices wires the commands' collaborators. Must be called before
// Execute.
func SetServices(s *Services) {
	services = s
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quickcast",
	Short: "A keyboard-driven launcher for your desktop",
	Long: `QuickCast searches applications, files, system actions, calendar
events, clipboard history and more from a single query box, and runs
the action behind the result you pick.

Run without arguments to open the interactive palette.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
