// Package storage keeps file-based JSON snapshots of generated week plans,
// one current version per week, beside the database.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meal-budget-planner/internal/planner"
)

// PlanArchive provides file-based storage for week plan snapshots.
type PlanArchive struct {
	basePath string
}

// NewPlanArchive creates a new PlanArchive and ensures the base directory exists.
func NewPlanArchive(basePath string) (*PlanArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", basePath, err)
	}
	return &PlanArchive{basePath: basePath}, nil
}

func weekKey(weekStart time.Time) string {
	return weekStart.UTC().Format("2006-01-02")
}

// getVersionedPath returns the full path for a given week and plan version.
func (a *PlanArchive) getVersionedPath(weekStart time.Time, planID string) string {
	filename := fmt.Sprintf("plan_%s_%s.json", weekKey(weekStart), planID)
	return filepath.Join(a.basePath, filename)
}

// Save snapshots a week plan, replacing any earlier versions of the same week.
func (a *PlanArchive) Save(plan planner.WeekPlan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := a.RemoveStaleVersions(plan.WeekStart); err != nil {
		return err
	}

	filePath := a.getVersionedPath(plan.WeekStart, plan.ID)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// Load retrieves the archived snapshot for a week.
func (a *PlanArchive) Load(weekStart time.Time) (*planner.WeekPlan, error) {
	pattern := filepath.Join(a.basePath, fmt.Sprintf("plan_%s_*.json", weekKey(weekStart)))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob plan files: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no archived plan for week %s", weekKey(weekStart))
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan planner.WeekPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}

// Exists checks whether a snapshot for the week is archived.
func (a *PlanArchive) Exists(weekStart time.Time) bool {
	pattern := filepath.Join(a.basePath, fmt.Sprintf("plan_%s_*.json", weekKey(weekStart)))
	matches, err := filepath.Glob(pattern)
	return err == nil && len(matches) > 0
}

// RemoveStaleVersions removes all snapshot files for a week. Called before
// saving a new version so only the latest exists.
func (a *PlanArchive) RemoveStaleVersions(weekStart time.Time) error {
	pattern := filepath.Join(a.basePath, fmt.Sprintf("plan_%s_*.json", weekKey(weekStart)))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to glob stale files: %w", err)
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", match, err)
		}
	}
	return nil
}
