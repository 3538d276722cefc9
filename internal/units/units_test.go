package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "lb", Normalize("LBS"))
	assert.Equal(t, "lb", Normalize("pounds"))
	assert.Equal(t, "cup", Normalize("Cups"))
	assert.Equal(t, "each", Normalize("pieces"))
	assert.Equal(t, "fl oz", Normalize("fluid ounces"))
	assert.Equal(t, "handful", Normalize("handful")) // unknown passes through
}

func TestFamilyOf(t *testing.T) {
	assert.Equal(t, FamilyMass, FamilyOf("lb"))
	assert.Equal(t, FamilyMass, FamilyOf("oz")) // bare oz defaults to mass
	assert.Equal(t, FamilyVolume, FamilyOf("cup"))
	assert.Equal(t, FamilyCount, FamilyOf("cloves"))
	assert.Equal(t, FamilyUnknown, FamilyOf("handful"))
}

func TestConvertWithinFamily(t *testing.T) {
	got, ok := Convert(1, "lb", "oz")
	require.True(t, ok)
	assert.InDelta(t, 16, got, 0.01)

	got, ok = Convert(2, "cup", "oz") // fluid ounces
	require.True(t, ok)
	assert.InDelta(t, 16, got, 0.01)

	got, ok = Convert(3, "tsp", "tbsp")
	require.True(t, ok)
	assert.InDelta(t, 1, got, 0.01)

	got, ok = Convert(2, "can", "each")
	require.True(t, ok)
	assert.Equal(t, 2.0, got)
}

func TestConvertRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"lb", "oz"}, {"kg", "g"}, {"cup", "tbsp"}, {"tbsp", "tsp"},
		{"l", "ml"}, {"cup", "fl oz"}, {"qt", "cup"},
	}
	for _, p := range pairs {
		there, ok := Convert(3.5, p[0], p[1])
		require.True(t, ok, "%s -> %s", p[0], p[1])
		back, ok := Convert(there, p[1], p[0])
		require.True(t, ok, "%s -> %s", p[1], p[0])
		assert.InDelta(t, 3.5, back, 1e-9, "%s <-> %s round trip", p[0], p[1])
	}
}

func TestConvertCrossFamilyFails(t *testing.T) {
	_, ok := Convert(1, "lb", "cup")
	assert.False(t, ok)
	_, ok = Convert(1, "each", "oz")
	assert.False(t, ok)
	_, ok = Convert(1, "handful", "oz")
	assert.False(t, ok)
}

func TestPackagesToBuy(t *testing.T) {
	assert.Equal(t, 1, PackagesToBuy(1, 1.25))
	assert.Equal(t, 1, PackagesToBuy(16, 32))
	assert.Equal(t, 2, PackagesToBuy(33, 32))
	assert.Equal(t, 1, PackagesToBuy(0.01, 32)) // any positive need buys one
	assert.Equal(t, 0, PackagesToBuy(0, 32))
	assert.Equal(t, 0, PackagesToBuy(5, 0))
}

func TestCostForQuantity(t *testing.T) {
	t.Run("GroundBeef", func(t *testing.T) {
		// 1 lb needed from a $4.99 / 1.25 lb package.
		lc := CostForQuantity(4.99, 1.25, "lb", 1, "lb")
		assert.Equal(t, 1, lc.Packages)
		assert.InDelta(t, 4.99, lc.Cost, 0.001)
		assert.False(t, lc.Incomplete)
	})

	t.Run("RiceCupsToOunces", func(t *testing.T) {
		// 2 cups needed from a $1.99 / 32 oz bag: 16 fl oz -> 1 bag.
		lc := CostForQuantity(1.99, 32, "oz", 2, "cups")
		assert.Equal(t, 1, lc.Packages)
		assert.InDelta(t, 1.99, lc.Cost, 0.001)
		assert.False(t, lc.UnitFallback)
	})

	t.Run("NoQuantityCostsOnePackage", func(t *testing.T) {
		lc := CostForQuantity(2.49, 16, "oz", 0, "")
		assert.True(t, lc.AssumedPackage)
		assert.Equal(t, 1, lc.Packages)
		assert.InDelta(t, 2.49, lc.Cost, 0.001)
	})

	t.Run("MissingPriceFlagsIncomplete", func(t *testing.T) {
		lc := CostForQuantity(0, 16, "oz", 2, "oz")
		assert.True(t, lc.Incomplete)
		assert.Zero(t, lc.Cost)

		lc = CostForQuantity(2.99, 0, "oz", 2, "oz")
		assert.True(t, lc.Incomplete)
		assert.Zero(t, lc.Cost)
	})

	t.Run("CrossFamilyFallsBackOneToOne", func(t *testing.T) {
		// 2 cups against a package sold by the pound: conversion is
		// undefined, quantity passes through 1:1 with a flag.
		lc := CostForQuantity(3.99, 1, "lb", 2, "cup")
		assert.True(t, lc.UnitFallback)
		assert.Equal(t, 2, lc.Packages)
		assert.InDelta(t, 7.98, lc.Cost, 0.001)
	})
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 6.98, RoundCents(4.99+1.99))
	assert.Equal(t, 0.1, RoundCents(0.1+1e-12))
	assert.Equal(t, 2.35, RoundCents(2.345000001))
}
