// Package shopping turns a finalized week of recipes into a consolidated,
// pantry-aware grocery list grouped by store section.
package shopping

import (
	"time"
)

// ListItem is one line of the grocery list. Quantity and Unit are expressed
// in the ingredient's package unit after consolidation.
type ListItem struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Section      string  `json:"section"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit,omitempty"`
	Packages     int     `json:"packages"`
	Cost         float64 `json:"cost"`

	// Recipes lists the titles this item feeds, for the "why is this on
	// the list" question at the store.
	Recipes []string `json:"recipes,omitempty"`
}

// Section is an ordered group of items along the shopping path.
type Section struct {
	Name  string     `json:"name"`
	Items []ListItem `json:"items"`
}

// GroceryList is the full output for one week. AlreadyHave holds items the
// pantry fully covers; Savings is the package cost avoided by netting the
// pantry, so Total plus Savings equals what the week would cost from an
// empty pantry.
type GroceryList struct {
	WeekStart   time.Time  `json:"week_start"`
	Sections    []Section  `json:"sections"`
	AlreadyHave []ListItem `json:"already_have,omitempty"`
	Total       float64    `json:"total"`
	Savings     float64    `json:"savings"`
	Warnings    []string   `json:"warnings,omitempty"`
}

// Items flattens the sections in shopping order.
func (g GroceryList) Items() []ListItem {
	var out []ListItem
	for _, s := range g.Sections {
		out = append(out, s.Items...)
	}
	return out
}
