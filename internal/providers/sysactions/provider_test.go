package sysactions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcast-app/quickcast/internal/core/domain"
)

func collect(t *testing.T) func(results <-chan domain.Result, errs <-chan error) []domain.Result {
	t.Helper()
	return func(results <-chan domain.Result, errs <-chan error) []domain.Result {
		var out []domain.Result
		for r := range results {
			out = append(out, r)
		}
		for err := range errs {
			require.NoError(t, err)
		}
		return out
	}
}

func TestSearch_MatchesByTitle(t *testing.T) {
	p := New()

	results := collect(t)(p.Search(context.Background(), "sleep"))

	require.Len(t, results, 1)
	assert.Equal(t, "sleep", results[0].ID)
	assert.Equal(t, domain.CategorySystemAction, results[0].Category)
	assert.Equal(t, domain.ActionSleep, results[0].Action.Kind)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestSearch_MatchesByKeyword(t *testing.T) {
	p := New()

	results := collect(t)(p.Search(context.Background(), "reboot"))

	require.Len(t, results, 1)
	assert.Equal(t, "restart", results[0].ID)
	assert.Less(t, results[0].Score, 1.0, "keyword hit should score below a title hit")
}

func TestSearch_TitleOutscoresKeyword(t *testing.T) {
	p := New()

	results := collect(t)(p.Search(context.Background(), "lock"))

	require.NotEmpty(t, results)
	var lock *domain.Result
	for i := range results {
		if results[i].ID == "lock-screen" {
			lock = &results[i]
		}
	}
	require.NotNil(t, lock)
	assert.GreaterOrEqual(t, lock.Score, 0.8)
}

func TestSearch_SettingsPanel(t *testing.T) {
	p := New()

	results := collect(t)(p.Search(context.Background(), "wifi"))

	require.Len(t, results, 1)
	assert.Equal(t, "panel-network", results[0].ID)
	assert.Equal(t, domain.ActionOpenPanel, results[0].Action.Kind)
	assert.Equal(t, "network", results[0].Action.Payload)
}

func TestSearch_EmptyQueryReturnsNothing(t *testing.T) {
	p := New()

	results := collect(t)(p.Search(context.Background(), "   "))

	assert.Empty(t, results)
}

func TestSearch_NoMatch(t *testing.T) {
	p := New()

	results := collect(t)(p.Search(context.Background(), "zzzzzzzz"))

	assert.Empty(t, results)
}
