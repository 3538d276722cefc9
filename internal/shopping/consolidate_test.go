package shopping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-budget-planner/internal/catalog"
	"meal-budget-planner/internal/pantry"
	"meal-budget-planner/internal/recipe"
)

var testWeek = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func testCatalog() []catalog.Ingredient {
	return []catalog.Ingredient{
		{ID: "beef", Name: "Ground Beef", Category: "Beef", PricePerPackage: 4.99, PackageSize: 1.25, PackageUnit: "lb", BaseUnit: "lb"},
		{ID: "rice", Name: "Rice", Category: "Grains", PricePerPackage: 1.99, PackageSize: 32, PackageUnit: "oz", BaseUnit: "oz"},
		{ID: "onion", Name: "Onion", Category: "Produce", PricePerPackage: 0.89, PackageSize: 1, PackageUnit: "each", BaseUnit: "each"},
		{ID: "cheese", Name: "Cheddar Cheese", Category: "Dairy", PricePerPackage: 3.49, PackageSize: 8, PackageUnit: "oz", BaseUnit: "oz"},
	}
}

func mkRecipe(id, title string, lines ...string) recipe.Recipe {
	return recipe.Recipe{ID: id, Title: title, Servings: 4, Ingredients: lines}
}

func TestConsolidateMergesAcrossRecipes(t *testing.T) {
	recipes := []recipe.Recipe{
		mkRecipe("r1", "Taco Pasta", "1 lb ground beef", "2 cups rice"),
		mkRecipe("r2", "Beef Bowls", "1 lb ground beef", "1 cup rice"),
	}

	list := Consolidate(testWeek, recipes, testCatalog(), nil, catalog.DefaultMatchConfig())

	items := list.Items()
	require.Len(t, items, 2)

	byID := make(map[string]ListItem)
	for _, item := range items {
		byID[item.IngredientID] = item
	}

	// 2 lb of beef across both recipes: ceil(2/1.25) = 2 packages.
	beef := byID["beef"]
	assert.Equal(t, 2, beef.Packages)
	assert.InDelta(t, 9.98, beef.Cost, 1e-9)
	assert.ElementsMatch(t, []string{"Taco Pasta", "Beef Bowls"}, beef.Recipes)

	// 3 cups of rice converts to ~24 oz: one 32 oz bag.
	rice := byID["rice"]
	assert.Equal(t, 1, rice.Packages)
	assert.InDelta(t, 1.99, rice.Cost, 1e-9)

	assert.InDelta(t, 11.97, list.Total, 1e-9)
	assert.Equal(t, 0.0, list.Savings)
}

func TestConsolidatePantryFullyCovers(t *testing.T) {
	recipes := []recipe.Recipe{mkRecipe("r1", "Taco Pasta", "1 lb ground beef", "2 cups rice")}
	onHand := []pantry.Item{{ID: "p1", IngredientID: "rice", Name: "Rice", Quantity: 20, Unit: "oz"}}

	list := Consolidate(testWeek, recipes, testCatalog(), onHand, catalog.DefaultMatchConfig())

	// Rice moves to already-have; only beef is bought.
	items := list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "beef", items[0].IngredientID)

	require.Len(t, list.AlreadyHave, 1)
	assert.Equal(t, "rice", list.AlreadyHave[0].IngredientID)
	assert.InDelta(t, 1.99, list.Savings, 1e-9)
	assert.InDelta(t, 4.99, list.Total, 1e-9)
}

func TestConsolidatePantryPartialRemainder(t *testing.T) {
	// 2 lb beef needed, 1 lb on hand: remainder 1 lb still needs one
	// 1.25 lb package. Gross would be 2 packages, so savings is one.
	recipes := []recipe.Recipe{
		mkRecipe("r1", "Taco Pasta", "1 lb ground beef"),
		mkRecipe("r2", "Beef Bowls", "1 lb ground beef"),
	}
	onHand := []pantry.Item{{ID: "p1", IngredientID: "beef", Name: "Ground Beef", Quantity: 1, Unit: "lb"}}

	list := Consolidate(testWeek, recipes, testCatalog(), onHand, catalog.DefaultMatchConfig())

	items := list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Packages)
	assert.InDelta(t, 4.99, list.Total, 1e-9)
	assert.InDelta(t, 4.99, list.Savings, 1e-9)
}

func TestConsolidateSavingsPlusTotalEqualsEmptyPantryCost(t *testing.T) {
	recipes := []recipe.Recipe{
		mkRecipe("r1", "Taco Pasta", "1 lb ground beef", "2 cups rice", "1 onion"),
		mkRecipe("r2", "Beef Bowls", "1 lb ground beef", "1 cup rice", "4 oz cheddar cheese"),
	}
	onHand := []pantry.Item{
		{ID: "p1", IngredientID: "rice", Name: "Rice", Quantity: 40, Unit: "oz"},
		{ID: "p2", IngredientID: "beef", Name: "Ground Beef", Quantity: 1, Unit: "lb"},
	}
	cfg := catalog.DefaultMatchConfig()

	empty := Consolidate(testWeek, recipes, testCatalog(), nil, cfg)
	netted := Consolidate(testWeek, recipes, testCatalog(), onHand, cfg)

	assert.InDelta(t, empty.Total, netted.Total+netted.Savings, 1e-9)
}

func TestConsolidatePantryMatchByName(t *testing.T) {
	// Pantry item without an ingredient id still nets by name.
	recipes := []recipe.Recipe{mkRecipe("r1", "Fried Rice", "2 cups rice")}
	onHand := []pantry.Item{{ID: "p1", Name: "rice", Quantity: 32, Unit: "oz"}}

	list := Consolidate(testWeek, recipes, testCatalog(), onHand, catalog.DefaultMatchConfig())
	assert.Empty(t, list.Items())
	require.Len(t, list.AlreadyHave, 1)
}

func TestConsolidateSectionOrdering(t *testing.T) {
	recipes := []recipe.Recipe{
		mkRecipe("r1", "Everything", "1 lb ground beef", "2 cups rice", "1 onion", "4 oz cheddar cheese"),
	}

	list := Consolidate(testWeek, recipes, testCatalog(), nil, catalog.DefaultMatchConfig())

	var names []string
	for _, s := range list.Sections {
		names = append(names, s.Name)
	}
	// Produce (onion), Meat (beef), Dairy (cheese), Pantry (rice).
	assert.Equal(t, []string{"Produce", "Meat", "Dairy", "Pantry"}, names)
}

func TestConsolidateIncompatibleUnitsKeepLarger(t *testing.T) {
	cat := []catalog.Ingredient{
		{ID: "broth", Name: "Chicken Broth", Category: "Canned", PricePerPackage: 2.49, PackageSize: 4, PackageUnit: "cup", BaseUnit: "cup"},
	}
	// "2 lb" cannot convert to cups; "3 cups" can. The merged requirement
	// keeps the larger of the raw quantities instead of summing.
	recipes := []recipe.Recipe{
		mkRecipe("r1", "Soup", "2 lb chicken broth"),
		mkRecipe("r2", "Stew", "3 cups chicken broth"),
	}

	list := Consolidate(testWeek, recipes, cat, nil, catalog.DefaultMatchConfig())

	items := list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3.0, items[0].Quantity)
	assert.NotEmpty(t, list.Warnings)
}

func TestConsolidateUnmatchedLineWarns(t *testing.T) {
	recipes := []recipe.Recipe{mkRecipe("r1", "Mystery", "1 tbsp saffron")}
	list := Consolidate(testWeek, recipes, testCatalog(), nil, catalog.DefaultMatchConfig())
	assert.Empty(t, list.Items())
	require.NotEmpty(t, list.Warnings)
	assert.Contains(t, list.Warnings[0], "saffron")
}

func TestConsolidateIdempotent(t *testing.T) {
	recipes := []recipe.Recipe{
		mkRecipe("r1", "Taco Pasta", "1 lb ground beef", "2 cups rice"),
		mkRecipe("r2", "Beef Bowls", "1 lb ground beef"),
	}
	cfg := catalog.DefaultMatchConfig()

	first := Consolidate(testWeek, recipes, testCatalog(), nil, cfg)
	second := Consolidate(testWeek, recipes, testCatalog(), nil, cfg)
	assert.Equal(t, first, second)
}

func TestFormatText(t *testing.T) {
	recipes := []recipe.Recipe{mkRecipe("r1", "Taco Pasta", "1 lb ground beef", "2 cups rice")}
	onHand := []pantry.Item{{ID: "p1", IngredientID: "rice", Name: "Rice", Quantity: 32, Unit: "oz"}}

	list := Consolidate(testWeek, recipes, testCatalog(), onHand, catalog.DefaultMatchConfig())
	text := FormatText(list)

	assert.Contains(t, text, "Grocery list for week of Aug 31, 2026")
	assert.Contains(t, text, "Ground Beef")
	assert.Contains(t, text, "[x] Rice")
	assert.Contains(t, text, "Total: $4.99")
	assert.Contains(t, text, "pantry saved $1.99")
}
