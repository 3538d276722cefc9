// Package catalog holds the ingredient catalog: what the store sells, in what
// package, at what price, and how free-text recipe lines are matched to it.
package catalog

import (
	"fmt"
	"time"

	"meal-budget-planner/internal/units"
)

// Ingredient is a purchasable catalog entry. Price and package fields use zero
// to mean "unknown"; incomplete entries still match, they just cost nothing
// and carry a warning downstream.
type Ingredient struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	PricePerPackage float64   `json:"price_per_package"`
	PackageSize     float64   `json:"package_size"`
	PackageUnit     string    `json:"package_unit"`
	BaseUnit        string    `json:"base_unit"`
	LastCostedAt    time.Time `json:"last_costed_at,omitempty"`
}

// Validate checks the structural invariants. Missing price data is a business
// gap, not an error; negative or zero values with a partner present are.
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("ingredient %s: name is required", i.ID)
	}
	if i.PricePerPackage < 0 {
		return fmt.Errorf("ingredient %q: price per package must be positive", i.Name)
	}
	if i.PackageSize < 0 {
		return fmt.Errorf("ingredient %q: package size must be positive", i.Name)
	}
	if i.PricePerPackage > 0 && i.PackageSize > 0 && i.PackageUnit == "" {
		return fmt.Errorf("ingredient %q: package unit is required with package data", i.Name)
	}
	if i.BaseUnit != "" && !units.KnownFamily(i.BaseUnit) {
		return fmt.Errorf("ingredient %q: base unit %q is not in a known unit family", i.Name, i.BaseUnit)
	}
	return nil
}

// HasPackageData reports whether the entry can be priced at all.
func (i Ingredient) HasPackageData() bool {
	return i.PricePerPackage > 0 && i.PackageSize > 0 && i.PackageUnit != ""
}
