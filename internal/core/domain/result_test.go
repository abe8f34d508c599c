package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCategory_IsValid tests built-in and custom category validity
func TestCategory_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		valid    bool
	}{
		{"application", CategoryApplication, true},
		{"file", CategoryFile, true},
		{"system action", CategorySystemAction, true},
		{"calendar event", CategoryCalendarEvent, true},
		{"clipboard item", CategoryClipboardItem, true},
		{"emoji", CategoryEmoji, true},
		{"action", CategoryAction, true},
		{"suggestion", CategorySuggestion, true},
		{"custom with label", CustomCategory("snippets"), true},
		{"custom without label", Category("custom:"), false},
		{"unknown", Category("bogus"), false},
		{"empty", Category(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.category.IsValid())
		})
	}
}

// TestCategory_CustomLabel tests custom label round-tripping
func TestCategory_CustomLabel(t *testing.T) {
	c := CustomCategory("snippets")
	assert.True(t, c.IsCustom())
	assert.Equal(t, "snippets", c.CustomLabel())
	assert.Equal(t, "custom:snippets", c.String())

	assert.False(t, CategoryFile.IsCustom())
	assert.Empty(t, CategoryFile.CustomLabel())
}

// TestCategory_Priority tests the tiebreak ordering of categories
func TestCategory_Priority(t *testing.T) {
	// Applications outrank everything; custom categories rank last.
	assert.Less(t, CategoryApplication.Priority(), CategorySystemAction.Priority())
	assert.Less(t, CategorySystemAction.Priority(), CategoryFile.Priority())
	assert.Less(t, CategoryFile.Priority(), CategoryEmoji.Priority())
	assert.Greater(t, CustomCategory("snippets").Priority(), CategorySuggestion.Priority())
}

// TestResult_Key tests deduplication key construction
func TestResult_Key(t *testing.T) {
	a := Result{ID: "safari", Category: CategoryApplication, Score: 0.9}
	b := Result{ID: "safari", Category: CategoryApplication, Score: 0.4}
	c := Result{ID: "safari", Category: CategoryFile, Score: 0.9}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}
