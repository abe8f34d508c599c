package domain

import "strings"

// customPrefix marks provider-defined categories.
const customPrefix = "custom:"

// Category identifies the kind of a result.
type Category string

// Built-in categories.
const (
	// CategoryApplication is an installed application.
	CategoryApplication Category = "application"

	// CategoryFile is a filesystem entry.
	CategoryFile Category = "file"

	// CategorySystemAction is a system command (sleep, lock, ...).
	CategorySystemAction Category = "system_action"

	// CategoryCalendarEvent is an upcoming calendar event.
	CategoryCalendarEvent Category = "calendar_event"

	// CategoryClipboardItem is an entry from clipboard history.
	CategoryClipboardItem Category = "clipboard_item"

	// CategoryEmoji is an emoji character.
	CategoryEmoji Category = "emoji"

	// CategoryAction is a generic launcher action.
	CategoryAction Category = "action"

	// CategorySuggestion is a computed answer (calculator, conversions).
	CategorySuggestion Category = "suggestion"
)

// CustomCategory builds a provider-defined category from a label.
func CustomCategory(label string) Category {
	return Category(customPrefix + label)
}

// IsCustom returns true for provider-defined categories.
func (c Category) IsCustom() bool {
	return strings.HasPrefix(string(c), customPrefix)
}

// CustomLabel returns the label of a custom category, or "" for built-ins.
func (c Category) CustomLabel() string {
	if !c.IsCustom() {
		return ""
	}
	return strings.TrimPrefix(string(c), customPrefix)
}

// IsValid returns true if the category is a built-in or a non-empty custom one.
func (c Category) IsValid() bool {
	switch c {
	case CategoryApplication, CategoryFile, CategorySystemAction,
		CategoryCalendarEvent, CategoryClipboardItem, CategoryEmoji,
		CategoryAction, CategorySuggestion:
		return true
	default:
		return c.IsCustom() && c.CustomLabel() != ""
	}
}

// Priority returns the category's rank-tiebreak priority. Lower sorts first
// when weighted scores are equal. Custom categories sort after built-ins.
func (c Category) Priority() int {
	switch c {
	case CategoryApplication:
		return 0
	case CategorySystemAction:
		return 1
	case CategoryAction:
		return 2
	case CategoryCalendarEvent:
		return 3
	case CategoryFile:
		return 4
	case CategoryClipboardItem:
		return 5
	case CategoryEmoji:
		return 6
	case CategorySuggestion:
		return 7
	default:
		return 8
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Result represents one candidate answer to a query. Results are immutable
// once constructed: providers hand them off by value and never touch a
// previously emitted Result again.
type Result struct {
	// ID is stable within one query generation. It need not be unique
	// across generations or across providers; the ranker deduplicates
	// on the (Category, ID) pair.
	ID string

	// Title is the primary display line.
	Title string

	// Subtitle is an optional secondary display line.
	Subtitle string

	// Icon is an opaque icon reference, passed through to the
	// presentation layer uninterpreted.
	Icon string

	// Category is the kind of the result.
	Category Category

	// Action is the side effect selecting this result triggers.
	Action Action

	// Score is the provider-local relevance in [0, 1]. Scores are not
	// comparable across providers until the ranker applies category
	// weights.
	Score float64
}

// Key identifies a result for deduplication within one generation.
type Key struct {
	Category Category
	ID       string
}

// Key returns the result's deduplication key.
func (r Result) Key() Key {
	return Key{Category: r.Category, ID: r.ID}
}
