package planner

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"meal-budget-planner/internal/pantry"
	"meal-budget-planner/internal/recipe"
	"meal-budget-planner/internal/units"
)

// ErrNoCandidates is returned when there is nothing to plan from.
var ErrNoCandidates = errors.New("no candidate recipes to plan from")

// SlotKind classifies a calendar day.
type SlotKind string

const (
	SlotCook     SlotKind = "cook"
	SlotLeftover SlotKind = "leftover"
)

// CalendarSlot is one day of the static weekly template.
type CalendarSlot struct {
	Day  string
	Kind SlotKind
}

// DefaultCalendar is the household rhythm: cook four nights, stretch each
// cook into the following leftover night. The template is static, never
// computed from the candidates.
func DefaultCalendar() [7]CalendarSlot {
	return [7]CalendarSlot{
		{Day: "Sunday", Kind: SlotLeftover},
		{Day: "Monday", Kind: SlotCook},
		{Day: "Tuesday", Kind: SlotCook},
		{Day: "Wednesday", Kind: SlotLeftover},
		{Day: "Thursday", Kind: SlotCook},
		{Day: "Friday", Kind: SlotLeftover},
		{Day: "Saturday", Kind: SlotCook},
	}
}

// DaySlot is one resolved day of a planned week.
type DaySlot struct {
	Day         string   `json:"day"`
	Kind        SlotKind `json:"kind"`
	RecipeID    string   `json:"recipe_id,omitempty"`
	RecipeTitle string   `json:"recipe_title,omitempty"`
	Cost        float64  `json:"cost,omitempty"`
	Unmet       bool     `json:"unmet,omitempty"`
}

// WeekPlan is a fully resolved week: every day is a recipe, a leftover
// night, or explicitly unmet.
type WeekPlan struct {
	ID         string    `json:"id"`
	WeekStart  time.Time `json:"week_start"`
	Budget     float64   `json:"budget"`
	Spent      float64   `json:"spent"`
	Days       []DaySlot `json:"days"`
	UnmetSlots int       `json:"unmet_slots,omitempty"`
	Warnings   []string  `json:"warnings,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// CookRecipeIDs returns the selected recipe ids in calendar order.
func (p WeekPlan) CookRecipeIDs() []string {
	var ids []string
	for _, d := range p.Days {
		if d.Kind == SlotCook && d.RecipeID != "" {
			ids = append(ids, d.RecipeID)
		}
	}
	return ids
}

// SelectInput is everything one planning run operates on: a snapshot fetched
// up front, never live reads interleaved with writes.
type SelectInput struct {
	WeekStart  time.Time
	Budget     float64
	Candidates []recipe.Recipe
	Usage      []UsageRecord
	Pantry     []pantry.Item
	Config     ScoreConfig
	Rand       *rand.Rand
}

// SelectWeek fills the weekly calendar greedily, one cook slot at a time.
// Each slot takes the max-scoring affordable candidate given the state built
// up by earlier slots; no backtracking, so the result is deliberately greedy
// rather than globally optimal. With a fixed Rand seed and fixed inputs the
// selection is fully reproducible.
func SelectWeek(in SelectInput) (WeekPlan, error) {
	if len(in.Candidates) == 0 {
		return WeekPlan{}, ErrNoCandidates
	}
	if in.Budget < 0 {
		return WeekPlan{}, fmt.Errorf("budget must not be negative, got %.2f", in.Budget)
	}

	cfg := in.Config
	if cfg == (ScoreConfig{}) {
		cfg = DefaultScoreConfig()
	}
	rng := in.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Candidate order must not leak into the result: sort by id so noise
	// draws and tie-breaks are stable however the caller built the slice.
	candidates := make([]recipe.Recipe, len(in.Candidates))
	copy(candidates, in.Candidates)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	calendar := DefaultCalendar()
	cookSlots := 0
	for _, slot := range calendar {
		if slot.Kind == SlotCook {
			cookSlots++
		}
	}

	hist := BuildHistory(in.Usage, in.WeekStart, cfg.LookbackWeeks)
	scorer := NewScorer(cfg, rng)

	state := SlotState{
		RemainingBudget: in.Budget,
		SlotsLeft:       cookSlots,
		CategoryCounts:  make(map[string]int),
		UsedIngredients: make(map[string]bool),
		PantryIDs:       make(map[string]bool),
	}
	for _, item := range in.Pantry {
		if item.IngredientID != "" {
			state.PantryIDs[item.IngredientID] = true
		}
	}

	plan := WeekPlan{
		ID:        uuid.NewString(),
		WeekStart: in.WeekStart,
		Budget:    in.Budget,
		Days:      make([]DaySlot, 0, len(calendar)),
	}
	selected := make(map[string]bool)

	for _, slot := range calendar {
		if slot.Kind == SlotLeftover {
			plan.Days = append(plan.Days, DaySlot{Day: slot.Day, Kind: SlotLeftover})
			continue
		}

		bestIdx := -1
		bestScore := 0.0
		for i, cand := range candidates {
			if selected[cand.ID] {
				continue
			}
			score, ok := scorer.Score(cand, hist, state)
			if !ok {
				continue
			}
			if bestIdx < 0 || score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}

		if bestIdx < 0 {
			plan.Days = append(plan.Days, DaySlot{Day: slot.Day, Kind: SlotCook, Unmet: true})
			plan.UnmetSlots++
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("no affordable recipe for %s", slot.Day))
			state.SlotsLeft--
			continue
		}

		chosen := candidates[bestIdx]
		cost := recipeCost(chosen)
		if chosen.TotalCost == nil {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("recipe %q has no computed cost, planned at $0", chosen.Title))
		}

		plan.Days = append(plan.Days, DaySlot{
			Day:         slot.Day,
			Kind:        SlotCook,
			RecipeID:    chosen.ID,
			RecipeTitle: chosen.Title,
			Cost:        cost,
		})
		selected[chosen.ID] = true

		state.RemainingBudget -= cost
		state.SlotsLeft--
		state.CategoryCounts[chosen.Category]++
		state.RecentCategories = append(state.RecentCategories, chosen.Category)
		if len(state.RecentCategories) > 2 {
			state.RecentCategories = state.RecentCategories[len(state.RecentCategories)-2:]
		}
		for _, id := range chosen.IngredientIDs {
			state.UsedIngredients[id] = true
		}
		plan.Spent = units.RoundCents(plan.Spent + cost)
	}

	return plan, nil
}
