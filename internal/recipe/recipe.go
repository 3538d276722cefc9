// Package recipe holds the recipe model, the ingredient-line parser and the
// cost calculator that prices a recipe against the ingredient catalog.
package recipe

// Recipe is the stored recipe. Ingredients are kept as the raw free-text lines
// they were authored with; IngredientIDs link the lines to catalog entries.
// TotalCost and CostPerServing are derived caches, recomputed on demand and
// never hand-authored.
type Recipe struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Servings       int      `json:"servings"`
	Ingredients    []string `json:"ingredients"`
	IngredientIDs  []string `json:"ingredient_ids,omitempty"`
	Instructions   string   `json:"instructions,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	PrepTime       string   `json:"prep_time,omitempty"`
	SourceURL      string   `json:"source_url,omitempty"`
	TotalCost      *float64 `json:"total_cost,omitempty"`
	CostPerServing *float64 `json:"cost_per_serving,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

// ApplyCosting caches a costing result on the recipe. Uncostable results
// clear the cache rather than leaving a stale total behind.
func (r *Recipe) ApplyCosting(c Costing) {
	if !c.Costable() {
		r.TotalCost = nil
		r.CostPerServing = nil
		return
	}
	total := c.Total
	r.TotalCost = &total
	r.CostPerServing = c.PerServing
}
