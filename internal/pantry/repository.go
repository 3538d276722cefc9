package pantry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	db "meal-budget-planner/internal/pantry/db"
)

// Repository is the database-backed pantry.
type Repository struct {
	queries *db.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: db.New(d),
		db:      d,
	}
}

// Save validates and upserts a pantry item.
func (r *Repository) Save(ctx context.Context, item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	addedAt := item.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now().UTC()
	}
	return r.queries.UpsertPantryItem(ctx, db.UpsertPantryItemParams{
		ID:           item.ID,
		IngredientID: sql.NullString{String: item.IngredientID, Valid: item.IngredientID != ""},
		Name:         item.Name,
		Quantity:     item.Quantity,
		Unit:         sql.NullString{String: item.Unit, Valid: item.Unit != ""},
		MustUse:      item.MustUse,
		AddedAt:      addedAt,
	})
}

// List returns all pantry items ordered by name.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.queries.ListPantryItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			ID:           row.ID,
			IngredientID: row.IngredientID.String,
			Name:         row.Name,
			Quantity:     row.Quantity,
			Unit:         row.Unit.String,
			MustUse:      row.MustUse,
			AddedAt:      row.AddedAt,
		})
	}
	return items, nil
}

// Delete removes a pantry item by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.queries.DeletePantryItem(ctx, id)
}
