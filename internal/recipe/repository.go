package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	db "meal-budget-planner/internal/recipe/db"
)

// Repository is a database-backed repository for recipes. Recipes are stored
// as JSON documents keyed by id; the schema stays stable while the recipe
// shape evolves.
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

// Save inserts or updates a recipe.
func (r *Repository) Save(ctx context.Context, rec Recipe) error {
	if rec.ID == "" {
		return fmt.Errorf("recipe %q: id is required", rec.Title)
	}
	now := time.Now().UTC()
	rec.UpdatedAt = now.Format(time.RFC3339)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe %s: %w", rec.ID, err)
	}
	return r.queries.InsertRecipe(ctx, db.InsertRecipeParams{
		ID:        rec.ID,
		Data:      string(data),
		UpdatedAt: now,
	})
}

// Get retrieves a recipe by id, nil when absent.
func (r *Repository) Get(ctx context.Context, id string) (*Recipe, error) {
	row, err := r.queries.GetRecipeByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	var rec Recipe
	if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe %s: %w", id, err)
	}
	return &rec, nil
}

// GetByIDs retrieves multiple recipes in one query. Corrupted rows are logged
// and skipped rather than failing the whole batch.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.queries.GetRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes by ids: %w", err)
	}
	return r.decodeRows(rows), nil
}

// List retrieves all recipes, optionally excluding the given ids.
func (r *Repository) List(ctx context.Context, excludeIDs []string) ([]Recipe, error) {
	var rows []db.Recipe
	var err error
	if len(excludeIDs) > 0 {
		rows, err = r.queries.ListRecipes(ctx, excludeIDs)
	} else {
		rows, err = r.queries.ListAllRecipes(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return r.decodeRows(rows), nil
}

// Count returns the number of stored recipes.
func (r *Repository) Count(ctx context.Context) (int, error) {
	n, err := r.queries.CountRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return int(n), nil
}

// Delete removes a recipe by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.queries.DeleteRecipe(ctx, id)
}

func (r *Repository) decodeRows(rows []db.Recipe) []Recipe {
	recipes := make([]Recipe, 0, len(rows))
	for _, row := range rows {
		var rec Recipe
		if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
			log.Printf("Warning: skipping recipe %s with invalid JSON: %v", row.ID, err)
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes
}
