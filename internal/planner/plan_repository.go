package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"meal-budget-planner/internal/planner/plan_db"
)

// PlanRepository persists weekly plans and the usage history the scorer
// feeds on. A week has at most one plan; saving again replaces it and its
// usage records wholesale, so replanning never double-counts usage.
type PlanRepository struct {
	queries *plan_db.Queries
	db      *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{
		queries: plan_db.New(d),
		db:      d,
	}
}

// SavePlan stores the plan for its week and replaces that week's usage
// records with the plan's cook selections, all in one transaction.
func (r *PlanRepository) SavePlan(ctx context.Context, plan WeekPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan %s: %w", plan.ID, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	weekStart := plan.WeekStart.UTC()

	if err := q.UpsertMealPlan(ctx, plan_db.UpsertMealPlanParams{
		ID:        plan.ID,
		WeekStart: weekStart,
		PlanData:  data,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to save plan for week %s: %w", weekStart.Format("2006-01-02"), err)
	}

	if err := q.DeleteUsageForWeek(ctx, weekStart); err != nil {
		return fmt.Errorf("failed to clear usage for week %s: %w", weekStart.Format("2006-01-02"), err)
	}
	for _, recipeID := range plan.CookRecipeIDs() {
		if err := q.InsertUsageRecord(ctx, plan_db.InsertUsageRecordParams{
			ID:        uuid.NewString(),
			RecipeID:  recipeID,
			WeekStart: weekStart,
		}); err != nil {
			return fmt.Errorf("failed to record usage of recipe %s: %w", recipeID, err)
		}
	}

	return tx.Commit()
}

// GetPlanByWeek retrieves the plan stored for a week, nil when absent.
func (r *PlanRepository) GetPlanByWeek(ctx context.Context, weekStart time.Time) (*WeekPlan, error) {
	row, err := r.queries.GetMealPlanByWeek(ctx, weekStart.UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan for week %s: %w", weekStart.Format("2006-01-02"), err)
	}
	var plan WeekPlan
	if err := json.Unmarshal(row.PlanData, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan %s: %w", row.ID, err)
	}
	return &plan, nil
}

// ListRecentPlans returns the most recent plans, newest first.
func (r *PlanRepository) ListRecentPlans(ctx context.Context, limit int) ([]WeekPlan, error) {
	rows, err := r.queries.ListRecentMealPlans(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent plans: %w", err)
	}
	plans := make([]WeekPlan, 0, len(rows))
	for _, row := range rows {
		var plan WeekPlan
		if err := json.Unmarshal(row.PlanData, &plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan %s: %w", row.ID, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// ListUsageSince returns usage records from weekStart onward, oldest first.
func (r *PlanRepository) ListUsageSince(ctx context.Context, weekStart time.Time) ([]UsageRecord, error) {
	rows, err := r.queries.ListUsageSince(ctx, weekStart.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list usage records: %w", err)
	}
	records := make([]UsageRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, UsageRecord{
			ID:        row.ID,
			RecipeID:  row.RecipeID,
			WeekStart: row.WeekStart,
		})
	}
	return records, nil
}
