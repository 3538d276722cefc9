package recipe

import (
	"fmt"

	"meal-budget-planner/internal/catalog"
	"meal-budget-planner/internal/units"
)

// LineBreakdown is the costing outcome of one ingredient line.
type LineBreakdown struct {
	Raw            string  `json:"raw"`
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit,omitempty"`
	IngredientID   string  `json:"ingredient_id,omitempty"`
	IngredientName string  `json:"ingredient_name,omitempty"`
	MatchScore     float64 `json:"match_score,omitempty"`
	Packages       int     `json:"packages"`
	Cost           float64 `json:"cost"`
	Resolved       bool    `json:"resolved"`
}

// Costing is the full pricing result for one recipe. Warnings accumulate every
// business-data gap hit along the way; only structurally invalid input errors.
type Costing struct {
	Total          float64
	PerServing     *float64
	Lines          []LineBreakdown
	MatchedCount   int
	UnmatchedCount int
	Warnings       []string
}

// Costable reports whether the total can be trusted at all: at least one line
// resolved against the catalog. Partially-resolved totals are still returned,
// the unresolved count tells consumers how much to trust them.
func (c Costing) Costable() bool {
	return c.MatchedCount > 0
}

// Cost prices a recipe against a candidate ingredient set, typically the
// recipe's linked catalog entries. It is idempotent: the total is rounded to
// cents exactly once, so recomputing from unchanged inputs yields identical
// results.
func Cost(rec Recipe, candidates []catalog.Ingredient, cfg catalog.MatchConfig) (Costing, error) {
	if rec.Servings < 0 {
		return Costing{}, fmt.Errorf("recipe %q: servings must not be negative, got %d", rec.Title, rec.Servings)
	}

	var out Costing
	total := 0.0

	for _, line := range ParseLines(rec.Ingredients) {
		bd := LineBreakdown{
			Raw:      line.Raw,
			Name:     line.Name,
			Quantity: line.Quantity,
			Unit:     line.Unit,
		}

		match, ok := catalog.BestMatch(line.Name, candidates, cfg)
		if !ok {
			out.UnmatchedCount++
			out.Warnings = append(out.Warnings, fmt.Sprintf("no catalog match for %q", line.Name))
			out.Lines = append(out.Lines, bd)
			continue
		}

		ing := match.Ingredient
		bd.IngredientID = ing.ID
		bd.IngredientName = ing.Name
		bd.MatchScore = match.Score
		bd.Resolved = true
		out.MatchedCount++

		if match.LowConfidence(cfg) {
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("low-confidence match for %q: %s (score %.0f)", line.Name, ing.Name, match.Score))
		}

		lc := units.CostForQuantity(ing.PricePerPackage, ing.PackageSize, ing.PackageUnit, line.Quantity, line.Unit)
		bd.Cost = lc.Cost
		bd.Packages = lc.Packages
		total += lc.Cost

		switch {
		case lc.Incomplete:
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("ingredient %q missing price or package size, costed at $0", ing.Name))
		case lc.AssumedPackage:
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("no quantity for %q, assuming one package", line.Name))
		case lc.UnitFallback:
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("cannot convert %s to %s for %q, using raw quantity", line.Unit, ing.PackageUnit, ing.Name))
		}

		out.Lines = append(out.Lines, bd)
	}

	out.Total = units.RoundCents(total)
	if rec.Servings > 0 && out.Costable() {
		per := out.Total / float64(rec.Servings)
		out.PerServing = &per
	}
	return out, nil
}
