package shopping

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"meal-budget-planner/internal/catalog"
	"meal-budget-planner/internal/pantry"
	"meal-budget-planner/internal/recipe"
	"meal-budget-planner/internal/units"
)

// SectionOrder is the fixed shopping path: perishables first, frozen last so
// it goes in the cart at the end. Unknown categories trail in "Other".
var SectionOrder = []string{"Produce", "Meat", "Dairy", "Pantry", "Frozen", "Other"}

// categoryAliases folds free-form catalog categories onto the store sections.
var categoryAliases = map[string]string{
	"produce":    "Produce",
	"vegetable":  "Produce",
	"vegetables": "Produce",
	"fruit":      "Produce",
	"fruits":     "Produce",
	"herbs":      "Produce",
	"meat":       "Meat",
	"beef":       "Meat",
	"pork":       "Meat",
	"chicken":    "Meat",
	"poultry":    "Meat",
	"seafood":    "Meat",
	"fish":       "Meat",
	"protein":    "Meat",
	"dairy":      "Dairy",
	"cheese":     "Dairy",
	"eggs":       "Dairy",
	"pantry":     "Pantry",
	"dry goods":  "Pantry",
	"grains":     "Pantry",
	"spices":     "Pantry",
	"baking":     "Pantry",
	"canned":     "Pantry",
	"condiments": "Pantry",
	"frozen":     "Frozen",
}

// StoreSection maps a catalog category onto its store section.
func StoreSection(category string) string {
	if s, ok := categoryAliases[strings.ToLower(strings.TrimSpace(category))]; ok {
		return s
	}
	return "Other"
}

// requirement accumulates one ingredient's gross need across the week, in
// the ingredient's package unit.
type requirement struct {
	ingredient catalog.Ingredient
	quantity   float64
	fallback   bool
	recipes    []string
}

// Consolidate merges the week's resolved ingredient lines by ingredient id,
// nets the pantry, converts remainders to whole packages and groups them by
// store section. It is pure and idempotent: same inputs, same list.
func Consolidate(weekStart time.Time, recipes []recipe.Recipe, candidates []catalog.Ingredient, onHand []pantry.Item, cfg catalog.MatchConfig) GroceryList {
	list := GroceryList{WeekStart: weekStart}
	reqs := make(map[string]*requirement)

	for _, rec := range recipes {
		for _, line := range recipe.ParseLines(rec.Ingredients) {
			match, ok := catalog.BestMatch(line.Name, candidates, cfg)
			if !ok {
				list.Warnings = append(list.Warnings,
					fmt.Sprintf("%s: no catalog match for %q, not on the list", rec.Title, line.Name))
				continue
			}
			ing := match.Ingredient
			qty, fellBack := lineQuantity(line, ing)

			req, seen := reqs[ing.ID]
			if !seen {
				reqs[ing.ID] = &requirement{ingredient: ing, quantity: qty, fallback: fellBack, recipes: []string{rec.Title}}
				continue
			}
			req.recipes = appendTitle(req.recipes, rec.Title)
			if fellBack || req.fallback {
				// Incompatible units must not be summed; keep the
				// larger requirement and say so.
				if qty > req.quantity {
					req.quantity = qty
				}
				req.fallback = true
				list.Warnings = append(list.Warnings,
					fmt.Sprintf("mixed units for %q, keeping the larger quantity", ing.Name))
			} else {
				req.quantity += qty
			}
		}
	}

	// Deterministic processing order.
	ids := make([]string, 0, len(reqs))
	for id := range reqs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sections := make(map[string][]ListItem)
	total := 0.0
	savings := 0.0

	for _, id := range ids {
		req := reqs[id]
		ing := req.ingredient

		onHandQty, netWarnings := pantryQuantity(onHand, ing)
		list.Warnings = append(list.Warnings, netWarnings...)

		net := req.quantity - onHandQty
		grossCost := packageCost(ing, req.quantity)

		if net <= 0 && onHandQty > 0 {
			savings += grossCost
			list.AlreadyHave = append(list.AlreadyHave, ListItem{
				IngredientID: ing.ID,
				Name:         ing.Name,
				Section:      StoreSection(ing.Category),
				Quantity:     req.quantity,
				Unit:         ing.PackageUnit,
				Cost:         grossCost,
				Recipes:      req.recipes,
			})
			continue
		}

		lc := units.CostForQuantity(ing.PricePerPackage, ing.PackageSize, ing.PackageUnit, net, ing.PackageUnit)
		if lc.Incomplete {
			list.Warnings = append(list.Warnings,
				fmt.Sprintf("ingredient %q missing price or package size, listed at $0", ing.Name))
		}

		item := ListItem{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Section:      StoreSection(ing.Category),
			Quantity:     net,
			Unit:         ing.PackageUnit,
			Packages:     lc.Packages,
			Cost:         lc.Cost,
			Recipes:      req.recipes,
		}
		sections[item.Section] = append(sections[item.Section], item)
		total += lc.Cost
		savings += grossCost - lc.Cost
	}

	for _, name := range SectionOrder {
		items := sections[name]
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		list.Sections = append(list.Sections, Section{Name: name, Items: items})
	}

	list.Total = units.RoundCents(total)
	list.Savings = units.RoundCents(savings)
	return list
}

// lineQuantity converts a parsed line into the ingredient's package unit.
// Lines without a quantity claim one whole package. The second return
// reports a failed conversion handled 1:1.
func lineQuantity(line recipe.Line, ing catalog.Ingredient) (float64, bool) {
	if line.Quantity <= 0 {
		return ing.PackageSize, false
	}
	if line.Unit == "" {
		return line.Quantity, false
	}
	converted, ok := units.Convert(line.Quantity, line.Unit, ing.PackageUnit)
	if !ok {
		return line.Quantity, true
	}
	return converted, false
}

// pantryQuantity sums what is on hand for an ingredient, in its package
// unit. Items match by ingredient id first, then case-insensitive name.
func pantryQuantity(onHand []pantry.Item, ing catalog.Ingredient) (float64, []string) {
	qty := 0.0
	var warnings []string
	for _, item := range onHand {
		if !item.Matches(ing.ID, ing.Name) {
			continue
		}
		if item.Unit == "" {
			qty += item.Quantity
			continue
		}
		converted, ok := units.Convert(item.Quantity, item.Unit, ing.PackageUnit)
		if !ok {
			warnings = append(warnings,
				fmt.Sprintf("pantry %q in %s cannot offset %q sold in %s", item.Name, item.Unit, ing.Name, ing.PackageUnit))
			continue
		}
		qty += converted
	}
	return qty, warnings
}

// packageCost prices a gross requirement as whole packages, ignoring the
// pantry. Used for the savings line.
func packageCost(ing catalog.Ingredient, qty float64) float64 {
	lc := units.CostForQuantity(ing.PricePerPackage, ing.PackageSize, ing.PackageUnit, qty, ing.PackageUnit)
	return lc.Cost
}

func appendTitle(titles []string, title string) []string {
	for _, t := range titles {
		if t == title {
			return titles
		}
	}
	return append(titles, title)
}
