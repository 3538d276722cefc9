package catalog

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeIngredients reads a JSON array of catalog entries and validates each.
// The whole batch is rejected on the first invalid entry, so a bulk import
// never half-applies.
func DecodeIngredients(r io.Reader) ([]Ingredient, error) {
	var ingredients []Ingredient
	if err := json.NewDecoder(r).Decode(&ingredients); err != nil {
		return nil, fmt.Errorf("failed to decode ingredient list: %w", err)
	}

	for idx, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", idx, err)
		}
	}
	return ingredients, nil
}
