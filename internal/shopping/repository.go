package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	db "meal-budget-planner/internal/shopping/db"
)

// Repository persists grocery lists, one per week. Saving always replaces
// the week's prior list outright; lists are regenerated, never merged.
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

// Save replaces the stored list for the list's week.
func (r *Repository) Save(ctx context.Context, list GroceryList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal grocery list: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	weekStart := list.WeekStart.UTC()

	if err := q.DeleteGroceryListForWeek(ctx, weekStart); err != nil {
		return fmt.Errorf("failed to clear grocery list for week %s: %w", weekStart.Format("2006-01-02"), err)
	}
	if err := q.InsertGroceryList(ctx, db.InsertGroceryListParams{
		ID:        uuid.NewString(),
		WeekStart: weekStart,
		ListData:  string(data),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to save grocery list for week %s: %w", weekStart.Format("2006-01-02"), err)
	}

	return tx.Commit()
}

// GetByWeek retrieves the list stored for a week, nil when absent.
func (r *Repository) GetByWeek(ctx context.Context, weekStart time.Time) (*GroceryList, error) {
	row, err := r.queries.GetGroceryListByWeek(ctx, weekStart.UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get grocery list for week %s: %w", weekStart.Format("2006-01-02"), err)
	}
	var list GroceryList
	if err := json.Unmarshal([]byte(row.ListData), &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grocery list %s: %w", row.ID, err)
	}
	return &list, nil
}
