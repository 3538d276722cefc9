package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"meal-budget-planner/internal/planner"
)

func TestPlanArchive(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "storage_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	archive, err := NewPlanArchive(tempDir)
	if err != nil {
		t.Fatalf("Failed to create PlanArchive: %v", err)
	}

	weekStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	plan := planner.WeekPlan{
		ID:        "plan-123",
		WeekStart: weekStart,
		Budget:    100,
		Spent:     42.50,
		Days: []planner.DaySlot{
			{Day: "Monday", Kind: planner.SlotCook, RecipeID: "r1", RecipeTitle: "Tacos", Cost: 12.50},
		},
	}

	t.Run("CheckExists-False", func(t *testing.T) {
		if archive.Exists(weekStart) {
			t.Error("Expected no snapshot for the week, but one exists")
		}
	})

	t.Run("Save", func(t *testing.T) {
		if err := archive.Save(plan); err != nil {
			t.Fatalf("Failed to save plan: %v", err)
		}

		filePath := filepath.Join(tempDir, "plan_2026-08-30_plan-123.json")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", filePath)
		}
	})

	t.Run("CheckExists-True", func(t *testing.T) {
		if !archive.Exists(weekStart) {
			t.Error("Expected a snapshot for the week, found none")
		}
	})

	t.Run("Load", func(t *testing.T) {
		loaded, err := archive.Load(weekStart)
		if err != nil {
			t.Fatalf("Failed to load plan: %v", err)
		}

		if loaded.ID != plan.ID {
			t.Errorf("Expected id '%s', got '%s'", plan.ID, loaded.ID)
		}
		if len(loaded.Days) != 1 {
			t.Fatalf("Expected 1 day, got %d", len(loaded.Days))
		}
		if loaded.Days[0].RecipeTitle != "Tacos" {
			t.Errorf("Expected recipe title 'Tacos', got '%s'", loaded.Days[0].RecipeTitle)
		}
	})

	t.Run("ReplacesStaleVersions", func(t *testing.T) {
		replan := plan
		replan.ID = "plan-456"
		if err := archive.Save(replan); err != nil {
			t.Fatalf("Failed to save replanned week: %v", err)
		}

		matches, err := filepath.Glob(filepath.Join(tempDir, "plan_2026-08-30_*.json"))
		if err != nil {
			t.Fatalf("Glob failed: %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("Expected 1 snapshot after replanning, got %d", len(matches))
		}

		loaded, err := archive.Load(weekStart)
		if err != nil {
			t.Fatalf("Failed to load plan: %v", err)
		}
		if loaded.ID != "plan-456" {
			t.Errorf("Expected the replanned id 'plan-456', got '%s'", loaded.ID)
		}
	})

	t.Run("Load-NotFound", func(t *testing.T) {
		if _, err := archive.Load(weekStart.AddDate(0, 0, 7)); err == nil {
			t.Fatal("Expected an error loading an unarchived week, got nil")
		}
	})
}
