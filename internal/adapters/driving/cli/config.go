package cli

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quickcast-app/quickcast/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the effective settings after merging the config file with
built-in defaults, and the path of the config file itself.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if services == nil {
		return errors.New("services not configured")
	}

	settings := services.Settings

	if services.ConfigStore != nil {
		cmd.Printf("Config file:        %s\n", services.ConfigStore.Path())
	}
	cmd.Printf("Provider timeout:   %v\n", settings.ProviderTimeout)
	cmd.Printf("Confirmation TTL:   %v\n", settings.ConfirmationTTL)
	cmd.Printf("Result limit:       %d\n", settings.Limit())

	if len(settings.DisabledProviders) > 0 {
		cmd.Printf("Disabled providers: %v\n", settings.DisabledProviders)
	}

	cmd.Println()
	cmd.Println("Category weights:")
	categories := make([]string, 0, len(settings.CategoryWeights))
	for cat := range settings.CategoryWeights {
		categories = append(categories, string(cat))
	}
	sort.Strings(categories)
	for _, cat := range categories {
		cmd.Printf("  %-16s %.2f\n", cat, settings.CategoryWeights[domain.Category(cat)])
	}
	return nil
}
