package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	db "meal-budget-planner/internal/catalog/db"
)

// Repository is the database-backed ingredient catalog.
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

// Save validates and upserts an ingredient.
func (r *Repository) Save(ctx context.Context, ing Ingredient) error {
	if err := ing.Validate(); err != nil {
		return err
	}
	return r.queries.UpsertIngredient(ctx, db.UpsertIngredientParams{
		ID:              ing.ID,
		Name:            ing.Name,
		Category:        ing.Category,
		PricePerPackage: nullFloat(ing.PricePerPackage),
		PackageSize:     nullFloat(ing.PackageSize),
		PackageUnit:     nullString(ing.PackageUnit),
		BaseUnit:        nullString(ing.BaseUnit),
		UpdatedAt:       time.Now().UTC(),
	})
}

// Get retrieves an ingredient by id, nil when absent.
func (r *Repository) Get(ctx context.Context, id string) (*Ingredient, error) {
	row, err := r.queries.GetIngredientByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingredient %s: %w", id, err)
	}
	ing := fromRow(row)
	return &ing, nil
}

// GetByIDs bulk-fetches ingredients; absent ids are silently omitted so one
// planning run issues a single query instead of many small lookups.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.queries.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients by ids: %w", err)
	}
	out := make([]Ingredient, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// List returns the whole catalog ordered by name.
func (r *Repository) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.queries.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	out := make([]Ingredient, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Count returns the catalog size.
func (r *Repository) Count(ctx context.Context) (int, error) {
	n, err := r.queries.CountIngredients(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count ingredients: %w", err)
	}
	return int(n), nil
}

// MarkCosted records that an ingredient took part in a successful recipe
// costing; the matcher uses this for deterministic tie-breaking.
func (r *Repository) MarkCosted(ctx context.Context, id string, at time.Time) error {
	return r.queries.MarkIngredientCosted(ctx, db.MarkIngredientCostedParams{
		LastCostedAt: sql.NullTime{Time: at.UTC(), Valid: true},
		ID:           id,
	})
}

func fromRow(row db.Ingredient) Ingredient {
	ing := Ingredient{
		ID:              row.ID,
		Name:            row.Name,
		Category:        row.Category,
		PricePerPackage: row.PricePerPackage.Float64,
		PackageSize:     row.PackageSize.Float64,
		PackageUnit:     row.PackageUnit.String,
		BaseUnit:        row.BaseUnit.String,
	}
	if row.LastCostedAt.Valid {
		ing.LastCostedAt = row.LastCostedAt.Time
	}
	return ing
}

func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v > 0}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
