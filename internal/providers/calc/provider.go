// Package calc provides an inline calculator: queries that parse as
// arithmetic expressions yield a single suggestion whose action copies
// the answer.
package calc

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// ProviderID identifies this provider in the registry.
const ProviderID = "calc"

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Provider evaluates arithmetic queries.
type Provider struct{}

// New creates a calc provider.
func New() *Provider { return &Provider{} }

// ID returns the provider identifier.
func (p *Provider) ID() string { return ProviderID }

// Search evaluates the query as an arithmetic expression. Queries that
// are not expressions, or that are a bare number, yield nothing.
func (p *Provider) Search(ctx context.Context, query string) (<-chan domain.Result, <-chan error) {
	expr := strings.TrimSpace(query)
	value, ok := evaluate(expr)
	if !ok {
		return driven.StreamResults(ctx, nil)
	}

	answer := formatValue(value)
	return driven.StreamResults(ctx, []domain.Result{{
		ID:       "calc",
		Title:    answer,
		Subtitle: expr + " =",
		Icon:     "accessories-calculator",
		Category: domain.CategorySuggestion,
		Action:   domain.CopyText(answer),
		Score:    1.0,
	}})
}

// formatValue renders integers without a decimal point and everything
// else with up to ten significant digits.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}
