package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "beef", NormalizeName("Ground Beef"))
	assert.Equal(t, "garlic", NormalizeName("  fresh minced garlic "))
	assert.Equal(t, "tomatoes", NormalizeName("diced tomatoes,"))
	assert.Equal(t, "onion", NormalizeName("Onion"))
	// A name that is nothing but prep words keeps its last token.
	assert.Equal(t, "ground", NormalizeName("fresh ground"))
}

func TestBestMatchExactAndContains(t *testing.T) {
	candidates := []Ingredient{
		{ID: "i1", Name: "Ground Beef"},
		{ID: "i2", Name: "Long Grain Rice"},
		{ID: "i3", Name: "Cheddar Cheese"},
	}
	cfg := DefaultMatchConfig()

	m, ok := BestMatch("1 lb ground beef", candidates, cfg)
	// Raw line text is not a name; the caller passes the parsed name.
	_ = m
	_ = ok

	m, ok = BestMatch("ground beef", candidates, cfg)
	require.True(t, ok)
	assert.Equal(t, "i1", m.Ingredient.ID)
	assert.Equal(t, float64(scoreExact), m.Score)

	m, ok = BestMatch("rice", candidates, cfg)
	require.True(t, ok)
	assert.Equal(t, "i2", m.Ingredient.ID)
	assert.Equal(t, float64(scoreContains), m.Score)
	assert.True(t, m.LowConfidence(cfg) == false)
}

func TestBestMatchTokenOverlap(t *testing.T) {
	candidates := []Ingredient{
		{ID: "i1", Name: "Boneless Skinless Chicken Thighs"},
	}
	cfg := DefaultMatchConfig()

	// 2 of 4 tokens shared: below the 0.6 overlap gate.
	_, ok := BestMatch("chicken thighs with bone", candidates, cfg)
	assert.False(t, ok)

	cfg.MinTokenOverlap = 0.4
	m, ok := BestMatch("chicken thighs with bone", candidates, cfg)
	require.True(t, ok)
	assert.InDelta(t, 50, m.Score, 0.01)
	assert.True(t, m.LowConfidence(cfg))
}

func TestBestMatchBelowFloorIsUnmatched(t *testing.T) {
	candidates := []Ingredient{{ID: "i1", Name: "Olive Oil"}}
	_, ok := BestMatch("soy sauce", candidates, DefaultMatchConfig())
	assert.False(t, ok)

	_, ok = BestMatch("", candidates, DefaultMatchConfig())
	assert.False(t, ok)
}

func TestBestMatchTieBreaksOnRecency(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	candidates := []Ingredient{
		{ID: "i9", Name: "Tortillas Flour", LastCostedAt: older},
		{ID: "i2", Name: "Tortillas Corn", LastCostedAt: newer},
	}
	// Both score as substring containment; recency decides.
	m, ok := BestMatch("tortillas", candidates, DefaultMatchConfig())
	require.True(t, ok)
	assert.Equal(t, "i2", m.Ingredient.ID)

	// With equal recency the smaller id wins, regardless of slice order.
	candidates[1].LastCostedAt = older
	m, ok = BestMatch("tortillas", candidates, DefaultMatchConfig())
	require.True(t, ok)
	assert.Equal(t, "i2", m.Ingredient.ID)

	reversed := []Ingredient{candidates[1], candidates[0]}
	m2, ok := BestMatch("tortillas", reversed, DefaultMatchConfig())
	require.True(t, ok)
	assert.Equal(t, m.Ingredient.ID, m2.Ingredient.ID)
}

func TestIngredientValidate(t *testing.T) {
	good := Ingredient{ID: "i1", Name: "Rice", Category: "Pantry", PricePerPackage: 1.99, PackageSize: 32, PackageUnit: "oz", BaseUnit: "oz"}
	require.NoError(t, good.Validate())

	bad := good
	bad.PricePerPackage = -1
	assert.Error(t, bad.Validate())

	bad = good
	bad.BaseUnit = "handful"
	assert.Error(t, bad.Validate())

	bad = good
	bad.PackageUnit = ""
	assert.Error(t, bad.Validate())

	// Missing price data entirely is allowed, just incomplete.
	sparse := Ingredient{ID: "i2", Name: "Salt", Category: "Pantry"}
	assert.NoError(t, sparse.Validate())
	assert.False(t, sparse.HasPackageData())
}
