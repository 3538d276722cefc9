package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-budget-planner/internal/catalog"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestBuildPantryItem(t *testing.T) {
	candidates := []catalog.Ingredient{
		{ID: "i1", Name: "Long Grain Rice"},
		{ID: "i2", Name: "Ground Beef"},
	}

	t.Run("ParsesAndLinks", func(t *testing.T) {
		item, err := buildPantryItem("2 cups rice", false, candidates)
		require.NoError(t, err)
		assert.Equal(t, "rice", item.Name)
		assert.Equal(t, 2.0, item.Quantity)
		assert.Equal(t, "cup", item.Unit)
		assert.Equal(t, "i1", item.IngredientID)
		assert.NotEmpty(t, item.ID)
		assert.False(t, item.AddedAt.IsZero())
	})

	t.Run("NameOnlyStaysUnlinked", func(t *testing.T) {
		item, err := buildPantryItem("saffron threads", true, candidates)
		require.NoError(t, err)
		assert.Equal(t, "saffron threads", item.Name)
		assert.Zero(t, item.Quantity)
		assert.Empty(t, item.IngredientID)
		assert.True(t, item.MustUse)
	})

	t.Run("EmptyLine", func(t *testing.T) {
		_, err := buildPantryItem("   ", false, candidates)
		require.Error(t, err)
	})
}

func TestWeekStartOf(t *testing.T) {
	// Tuesday 2026-09-01 rolls back to Sunday 2026-08-30.
	at := mustParse(t, "2026-09-01T15:04:05Z")
	got := WeekStartOf(at)
	assert.Equal(t, mustParse(t, "2026-08-30T00:00:00Z"), got)

	// A Sunday is already the week start.
	sunday := mustParse(t, "2026-08-30T23:59:59Z")
	assert.Equal(t, mustParse(t, "2026-08-30T00:00:00Z"), WeekStartOf(sunday))
}
