package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-budget-planner/internal/catalog"
)

func tacoPastaCatalog() []catalog.Ingredient {
	return []catalog.Ingredient{
		{ID: "beef", Name: "Ground Beef", Category: "Meat", PricePerPackage: 4.99, PackageSize: 1.25, PackageUnit: "lb", BaseUnit: "lb"},
		{ID: "rice", Name: "Rice", Category: "Pantry", PricePerPackage: 1.99, PackageSize: 32, PackageUnit: "oz", BaseUnit: "oz"},
	}
}

func TestCostTacoPasta(t *testing.T) {
	rec := Recipe{
		ID:          "taco-pasta",
		Title:       "Taco Pasta",
		Category:    "beef",
		Servings:    4,
		Ingredients: []string{"1 lb ground beef", "2 cups rice"},
	}

	c, err := Cost(rec, tacoPastaCatalog(), catalog.DefaultMatchConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, c.MatchedCount)
	assert.Equal(t, 0, c.UnmatchedCount)
	assert.True(t, c.Costable())
	assert.Equal(t, 6.98, c.Total)
	require.NotNil(t, c.PerServing)
	assert.InDelta(t, 1.745, *c.PerServing, 1e-9)

	require.Len(t, c.Lines, 2)
	assert.Equal(t, 1, c.Lines[0].Packages)
	assert.Equal(t, 4.99, c.Lines[0].Cost)
	assert.Equal(t, 1, c.Lines[1].Packages)
	assert.Equal(t, 1.99, c.Lines[1].Cost)
}

func TestCostIdempotent(t *testing.T) {
	rec := Recipe{
		ID:          "taco-pasta",
		Title:       "Taco Pasta",
		Servings:    4,
		Ingredients: []string{"1 lb ground beef", "2 cups rice"},
	}
	cfg := catalog.DefaultMatchConfig()

	first, err := Cost(rec, tacoPastaCatalog(), cfg)
	require.NoError(t, err)
	second, err := Cost(rec, tacoPastaCatalog(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Lines, second.Lines)
}

func TestCostPartiallyResolved(t *testing.T) {
	rec := Recipe{
		ID:          "r1",
		Title:       "Mystery Stew",
		Servings:    2,
		Ingredients: []string{"1 lb ground beef", "2 tbsp harissa paste"},
	}

	c, err := Cost(rec, tacoPastaCatalog(), catalog.DefaultMatchConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, c.MatchedCount)
	assert.Equal(t, 1, c.UnmatchedCount)
	assert.True(t, c.Costable())
	assert.Equal(t, 4.99, c.Total)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "harissa paste")
}

func TestCostNothingResolved(t *testing.T) {
	rec := Recipe{
		ID:          "r2",
		Title:       "Empty",
		Servings:    4,
		Ingredients: []string{"1 tbsp saffron"},
	}

	c, err := Cost(rec, tacoPastaCatalog(), catalog.DefaultMatchConfig())
	require.NoError(t, err)
	assert.False(t, c.Costable())
	assert.Nil(t, c.PerServing)
	assert.Equal(t, 0.0, c.Total)
}

func TestCostNegativeServings(t *testing.T) {
	rec := Recipe{ID: "r3", Title: "Bad", Servings: -1, Ingredients: []string{"1 lb ground beef"}}
	_, err := Cost(rec, tacoPastaCatalog(), catalog.DefaultMatchConfig())
	assert.Error(t, err)
}

func TestCostZeroServingsHasNoPerServing(t *testing.T) {
	rec := Recipe{ID: "r4", Title: "Unknown Yield", Servings: 0, Ingredients: []string{"1 lb ground beef"}}
	c, err := Cost(rec, tacoPastaCatalog(), catalog.DefaultMatchConfig())
	require.NoError(t, err)
	assert.True(t, c.Costable())
	assert.Nil(t, c.PerServing)
}

func TestCostMissingPackageData(t *testing.T) {
	candidates := []catalog.Ingredient{{ID: "salt", Name: "Salt", Category: "Pantry"}}
	rec := Recipe{ID: "r5", Title: "Just Salt", Servings: 4, Ingredients: []string{"1 tsp salt"}}

	c, err := Cost(rec, candidates, catalog.DefaultMatchConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, c.MatchedCount)
	assert.Equal(t, 0.0, c.Total)
	require.NotEmpty(t, c.Warnings)
	assert.Contains(t, c.Warnings[len(c.Warnings)-1], "missing price")
}

func TestCostAssumedPackage(t *testing.T) {
	rec := Recipe{ID: "r6", Title: "Beef", Servings: 4, Ingredients: []string{"ground beef"}}
	c, err := Cost(rec, tacoPastaCatalog(), catalog.DefaultMatchConfig())
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Packages)
	assert.Equal(t, 4.99, c.Lines[0].Cost)
	require.NotEmpty(t, c.Warnings)
	assert.Contains(t, c.Warnings[len(c.Warnings)-1], "assuming one package")
}

func TestApplyCosting(t *testing.T) {
	rec := Recipe{ID: "r7", Title: "Taco Pasta", Servings: 4, Ingredients: []string{"1 lb ground beef", "2 cups rice"}}
	c, err := Cost(rec, tacoPastaCatalog(), catalog.DefaultMatchConfig())
	require.NoError(t, err)

	rec.ApplyCosting(c)
	require.NotNil(t, rec.TotalCost)
	assert.Equal(t, 6.98, *rec.TotalCost)
	require.NotNil(t, rec.CostPerServing)

	rec.ApplyCosting(Costing{})
	assert.Nil(t, rec.TotalCost)
	assert.Nil(t, rec.CostPerServing)
}
