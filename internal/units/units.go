// Package units converts between purchase units and recipe quantities and
// rounds requirements up to whole purchasable packages.
//
// Units are grouped into three families: mass, volume and count. Conversion is
// only defined within a family, via fixed ratio tables. A bare "oz" is treated
// as mass when paired with another mass unit and as fluid ounces when paired
// with a volume unit, which is how recipe text uses it in practice.
package units

import (
	"math"
	"strings"
)

// Family classifies a unit for conversion purposes.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyMass
	FamilyVolume
	FamilyCount
)

func (f Family) String() string {
	switch f {
	case FamilyMass:
		return "mass"
	case FamilyVolume:
		return "volume"
	case FamilyCount:
		return "count"
	default:
		return "unknown"
	}
}

// gramsPer maps mass units to grams.
var gramsPer = map[string]float64{
	"g":  1,
	"kg": 1000,
	"oz": 28.35,
	"lb": 453.6,
}

// mlPer maps volume units to milliliters. "oz" here means fluid ounces.
var mlPer = map[string]float64{
	"ml":    1,
	"l":     1000,
	"tsp":   4.93,
	"tbsp":  14.79,
	"fl oz": 29.57,
	"oz":    29.57,
	"cup":   236.6,
	"pt":    473.2,
	"qt":    946.4,
	"gal":   3785.4,
}

// countUnits are interchangeable 1:1. "2 cloves" vs a package sold "per each"
// is close enough for grocery math; precision lives in mass and volume.
var countUnits = map[string]bool{
	"each":   true,
	"can":    true,
	"packet": true,
	"bag":    true,
	"clove":  true,
	"head":   true,
	"bunch":  true,
}

var unitAliases = map[string]string{
	"lbs":          "lb",
	"pound":        "lb",
	"pounds":       "lb",
	"ounce":        "oz",
	"ounces":       "oz",
	"fluid ounce":  "fl oz",
	"fluid ounces": "fl oz",
	"gram":         "g",
	"grams":        "g",
	"kilogram":     "kg",
	"kilograms":    "kg",
	"liter":        "l",
	"liters":       "l",
	"milliliter":   "ml",
	"milliliters":  "ml",
	"cups":         "cup",
	"tablespoon":   "tbsp",
	"tablespoons":  "tbsp",
	"teaspoon":     "tsp",
	"teaspoons":    "tsp",
	"pint":         "pt",
	"pints":        "pt",
	"quart":        "qt",
	"quarts":       "qt",
	"gallon":       "gal",
	"gallons":      "gal",
	"cans":         "can",
	"packets":      "packet",
	"bags":         "bag",
	"cloves":       "clove",
	"heads":        "head",
	"bunches":      "bunch",
	"piece":        "each",
	"pieces":       "each",
	"item":         "each",
	"items":        "each",
	"count":        "each",
}

// Normalize lower-cases a unit and collapses plural and long-form spellings
// onto the canonical short form used by the ratio tables.
func Normalize(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitAliases[u]; ok {
		return canonical
	}
	return u
}

// FamilyOf returns the primary family of a unit. A bare "oz" reports mass;
// Convert still handles it as fluid ounces when the other side is volume.
func FamilyOf(unit string) Family {
	u := Normalize(unit)
	switch {
	case gramsPer[u] != 0:
		return FamilyMass
	case mlPer[u] != 0:
		return FamilyVolume
	case countUnits[u]:
		return FamilyCount
	default:
		return FamilyUnknown
	}
}

// KnownFamily reports whether the unit belongs to any family.
func KnownFamily(unit string) bool {
	return FamilyOf(unit) != FamilyUnknown
}

// Convert converts qty from one unit to another within a single family.
// It returns false when the units belong to different families (or are
// unknown); callers decide how to fail soft.
func Convert(qty float64, from, to string) (float64, bool) {
	f, t := Normalize(from), Normalize(to)
	if f == t {
		return qty, true
	}
	if gramsPer[f] != 0 && gramsPer[t] != 0 {
		return qty * gramsPer[f] / gramsPer[t], true
	}
	if mlPer[f] != 0 && mlPer[t] != 0 {
		return qty * mlPer[f] / mlPer[t], true
	}
	if countUnits[f] && countUnits[t] {
		return qty, true
	}
	return 0, false
}

// PackagesToBuy returns the whole number of packages covering the required
// quantity. Fractional packages are never sold, so any positive requirement
// buys at least one package.
func PackagesToBuy(required, packageSize float64) int {
	if required <= 0 || packageSize <= 0 {
		return 0
	}
	return int(math.Ceil(required / packageSize))
}

// LineCost is the purchasable cost attributed to a single requirement.
type LineCost struct {
	Cost     float64
	Packages int

	// Incomplete is set when the ingredient is missing price or package
	// size. The cost is zero and must be surfaced, never estimated.
	Incomplete bool

	// AssumedPackage is set when no quantity was given and the line was
	// priced as a single package.
	AssumedPackage bool

	// UnitFallback is set when the requirement's unit could not be
	// converted to the package unit and the raw quantity was used 1:1.
	UnitFallback bool
}

// CostForQuantity prices a required quantity against an ingredient's package.
// qty <= 0 means the recipe line had no parseable quantity; those lines cost
// one package rather than nothing, since recipe text routinely omits amounts
// for aromatics and staples.
func CostForQuantity(pricePerPackage, packageSize float64, packageUnit string, qty float64, qtyUnit string) LineCost {
	if pricePerPackage <= 0 || packageSize <= 0 {
		return LineCost{Incomplete: true}
	}
	if qty <= 0 {
		return LineCost{Cost: pricePerPackage, Packages: 1, AssumedPackage: true}
	}

	inPackageUnits := qty
	fallback := false
	if qtyUnit != "" {
		converted, ok := Convert(qty, qtyUnit, packageUnit)
		if ok {
			inPackageUnits = converted
		} else {
			fallback = true
		}
	}

	packages := PackagesToBuy(inPackageUnits, packageSize)
	return LineCost{
		Cost:         float64(packages) * pricePerPackage,
		Packages:     packages,
		UnitFallback: fallback,
	}
}

// RoundCents rounds a dollar amount to whole cents. Totals are rounded once
// at the point of persistence, not at every intermediate step, so repeated
// recomputation yields identical results.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
