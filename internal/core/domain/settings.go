package domain

import (
	"fmt"
	"time"
)

// Default settings values.
const (
	// DefaultProviderTimeout bounds one provider's work per generation.
	DefaultProviderTimeout = 300 * time.Millisecond

	// DefaultConfirmationTTL bounds the confirmation handshake for
	// critical actions.
	DefaultConfirmationTTL = 30 * time.Second

	// DefaultResultLimit caps the ranked list delivered per generation.
	DefaultResultLimit = 50

	// MaxCategoryWeight is the exclusive upper bound for weights.
	MaxCategoryWeight = 2.0
)

// Settings holds the configuration surface of the query core: per-category
// ranking weights, aggregation timeouts, and provider toggles.
type Settings struct {
	// ProviderTimeout is the per-provider budget for one generation.
	ProviderTimeout time.Duration

	// ConfirmationTTL is how long a pending confirmation stays valid.
	ConfirmationTTL time.Duration

	// ResultLimit caps the delivered ranked list. Zero means default.
	ResultLimit int

	// CategoryWeights maps category to a weight in (0, 2]. The ranker
	// multiplies a result's raw score by its category weight before
	// merging. Categories absent from the map weigh 1.0.
	CategoryWeights map[Category]float64

	// DisabledProviders lists provider IDs excluded from fan-out.
	DisabledProviders []string
}

// DefaultSettings returns settings with sane defaults. The default weights
// favour exact-feeling matches (applications, system actions) over fuzzy
// ones (files, clipboard history).
func DefaultSettings() Settings {
	return Settings{
		ProviderTimeout: DefaultProviderTimeout,
		ConfirmationTTL: DefaultConfirmationTTL,
		ResultLimit:     DefaultResultLimit,
		CategoryWeights: map[Category]float64{
			CategoryApplication:   1.0,
			CategorySystemAction:  0.9,
			CategoryAction:        0.85,
			CategoryCalendarEvent: 0.8,
			CategoryFile:          0.6,
			CategoryClipboardItem: 0.5,
			CategoryEmoji:         0.5,
			CategorySuggestion:    0.7,
		},
	}
}

// Weight returns the effective weight for a category.
func (s Settings) Weight(c Category) float64 {
	if w, ok := s.CategoryWeights[c]; ok {
		return w
	}
	return 1.0
}

// ProviderEnabled returns false if the provider ID is disabled.
func (s Settings) ProviderEnabled(id string) bool {
	for _, d := range s.DisabledProviders {
		if d == id {
			return false
		}
	}
	return true
}

// Validate checks the settings for consistency.
func (s Settings) Validate() error {
	if s.ProviderTimeout <= 0 {
		return fmt.Errorf("%w: provider timeout must be positive", ErrInvalidInput)
	}
	if s.ConfirmationTTL <= 0 {
		return fmt.Errorf("%w: confirmation TTL must be positive", ErrInvalidInput)
	}
	if s.ResultLimit < 0 {
		return fmt.Errorf("%w: result limit must not be negative", ErrInvalidInput)
	}
	for cat, w := range s.CategoryWeights {
		if !cat.IsValid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, cat)
		}
		if w <= 0 || w > MaxCategoryWeight {
			return fmt.Errorf("%w: weight for %q must be in (0, %v], got %v",
				ErrInvalidInput, cat, MaxCategoryWeight, w)
		}
	}
	return nil
}

// Limit returns the effective result limit.
func (s Settings) Limit() int {
	if s.ResultLimit <= 0 {
		return DefaultResultLimit
	}
	return s.ResultLimit
}
