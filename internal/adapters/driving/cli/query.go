package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	core "github.com/quickcast-app/quickcast/internal/core/services"
)

var (
	queryLimit int
	queryJSON  bool
)

// queryWait bounds how long the one-shot command waits for providers.
// Generous compared to the per-provider timeout so slow providers are
// cut off by the aggregator, not by us.
const queryWait = 5 * time.Second

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run a one-shot query and print the ranked results",
	Long: `Fans the query out to every enabled provider, waits for them to
finish or time out, and prints the final ranked list.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 0, "maximum number of results (0 = configured limit)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

// collectorSink gathers the final delivery for a one-shot query.
type collectorSink struct {
	results []domain.Result
	done    chan struct{}
}

func newCollectorSink() *collectorSink {
	return &collectorSink{done: make(chan struct{})}
}

func (c *collectorSink) Deliver(_ uint64, results []domain.Result) {
	c.results = results
}

func (c *collectorSink) Complete(_ uint64) {
	close(c.done)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if services == nil {
		return errors.New("services not configured")
	}

	settings := services.Settings
	if queryLimit > 0 {
		settings.ResultLimit = queryLimit
	}

	sink := newCollectorSink()
	ranker := core.NewRanker(settings)
	aggregator := core.NewAggregator(services.Registry, ranker, settings)
	session := core.NewQuerySession(aggregator, sink)
	defer session.Close()

	session.Submit(args[0])

	select {
	case <-sink.done:
	case <-time.After(queryWait):
		return fmt.Errorf("query timed out after %v", queryWait)
	}

	if queryJSON {
		return outputQueryJSON(cmd, sink.results)
	}
	return outputQueryTable(cmd, sink.results)
}

// queryResult is the JSON shape for one result.
type queryResult struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Category string  `json:"category"`
	Action   string  `json:"action"`
	Score    float64 `json:"score"`
}

func outputQueryJSON(cmd *cobra.Command, results []domain.Result) error {
	out := make([]queryResult, 0, len(results))
	for _, r := range results {
		out = append(out, queryResult{
			ID:       r.ID,
			Title:    r.Title,
			Subtitle: r.Subtitle,
			Category: string(r.Category),
			Action:   string(r.Action.Kind),
			Score:    r.Score,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryTable(cmd *cobra.Command, results []domain.Result) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%s, %.2f)\n", i+1, r.Title, r.Category, r.Score)
		if r.Subtitle != "" {
			cmd.Printf("      %s\n", r.Subtitle)
		}
	}
	cmd.Println()
	return nil
}
