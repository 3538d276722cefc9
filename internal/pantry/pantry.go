// Package pantry tracks what is already on hand, so planning can favor
// recipes that use it up and shopping lists can skip buying it again.
package pantry

import (
	"fmt"
	"strings"
	"time"
)

// Item is one thing on hand. IngredientID links to the catalog when known;
// items added by hand may only carry a free-text name, which netting falls
// back to case-insensitively.
type Item struct {
	ID           string    `json:"id"`
	IngredientID string    `json:"ingredient_id,omitempty"`
	Name         string    `json:"name"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit,omitempty"`
	MustUse      bool      `json:"must_use"`
	AddedAt      time.Time `json:"added_at,omitempty"`
}

// Validate checks the structural invariants.
func (i Item) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("pantry item %s: name is required", i.ID)
	}
	if i.Quantity < 0 {
		return fmt.Errorf("pantry item %q: quantity must not be negative", i.Name)
	}
	return nil
}

// Matches reports whether the item covers the given ingredient id or name.
// The id wins when both sides have one; the name comparison is case-insensitive.
func (i Item) Matches(ingredientID, name string) bool {
	if i.IngredientID != "" && ingredientID != "" {
		return i.IngredientID == ingredientID
	}
	return strings.EqualFold(i.Name, name)
}
