package planner

import (
	"math/rand"

	"meal-budget-planner/internal/recipe"
)

// ScoreConfig holds the additive scoring weights. The defaults are tuned for
// a $100 week; every term is overridable so tests can isolate one behavior
// at a time (usually by zeroing NoiseMax).
type ScoreConfig struct {
	// NoiseMax bounds the random exploration term added to every candidate.
	NoiseMax float64

	// RecencyPenalties apply when the recipe was last used 1, 2 or 3 weeks
	// ago. Beyond index 2 the lookback window still counts frequency but
	// recency no longer penalizes.
	RecencyPenalties [3]float64

	// FrequencyPenalty is multiplied by the squared use count in the
	// lookback window, so a third repeat hurts far more than a second.
	FrequencyPenalty float64

	// NoveltyBonus rewards recipes with no usage in the window at all.
	NoveltyBonus float64

	// LookbackWeeks is how far back usage history matters.
	LookbackWeeks int

	// BudgetSoftMultiplier and BudgetSoftPenalty penalize candidates that
	// would eat more than the multiplier times the even per-slot share of
	// the remaining budget. Exceeding the remaining budget outright is a
	// hard exclusion, not a penalty.
	BudgetSoftMultiplier float64
	BudgetSoftPenalty    float64

	// RotationPenalty applies when the candidate's category matches either
	// of the last two selections this week; RotationRepeatPenalty stacks
	// on top once the category has already been picked twice.
	RotationPenalty       float64
	RotationRepeatPenalty float64

	// OverlapBonus is granted per ingredient id shared with recipes
	// already selected this week.
	OverlapBonus float64

	// PantryBonus scales with the fraction of the candidate's ingredients
	// already on hand.
	PantryBonus float64
}

// DefaultScoreConfig returns the tuned weights.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		NoiseMax:              20,
		RecencyPenalties:      [3]float64{60, 35, 15},
		FrequencyPenalty:      10,
		NoveltyBonus:          25,
		LookbackWeeks:         4,
		BudgetSoftMultiplier:  1.5,
		BudgetSoftPenalty:     100,
		RotationPenalty:       50,
		RotationRepeatPenalty: 30,
		OverlapBonus:          5,
		PantryBonus:           40,
	}
}

// SlotState is the selection state accumulated over earlier cook slots in the
// same run.
type SlotState struct {
	RemainingBudget float64
	SlotsLeft       int

	// RecentCategories holds the categories of the last two selections.
	RecentCategories []string

	// CategoryCounts tallies selections per category this week.
	CategoryCounts map[string]int

	// UsedIngredients holds ingredient ids of already-selected recipes.
	UsedIngredients map[string]bool

	// PantryIDs holds ingredient ids currently on hand.
	PantryIDs map[string]bool
}

// Scorer assigns desirability scores for one planning run. The noise term is
// drawn once per recipe and memoized, so scoring the same candidate for
// successive slots shifts only with the deterministic terms.
type Scorer struct {
	cfg   ScoreConfig
	rng   *rand.Rand
	noise map[string]float64
}

// NewScorer creates a scorer for a single run. The caller owns the seed, so
// fixed-seed runs reproduce exactly.
func NewScorer(cfg ScoreConfig, rng *rand.Rand) *Scorer {
	return &Scorer{
		cfg:   cfg,
		rng:   rng,
		noise: make(map[string]float64),
	}
}

// Score computes the additive desirability of a candidate. The second return
// is false when the candidate is hard-excluded: its cost exceeds the
// remaining weekly budget.
func (s *Scorer) Score(rec recipe.Recipe, hist History, st SlotState) (float64, bool) {
	cost := recipeCost(rec)
	if cost > st.RemainingBudget {
		return 0, false
	}

	score := s.noiseFor(rec.ID)

	if st.SlotsLeft > 0 {
		perSlot := st.RemainingBudget / float64(st.SlotsLeft)
		if cost > perSlot*s.cfg.BudgetSoftMultiplier {
			score -= s.cfg.BudgetSoftPenalty
		}
	}

	if stats, used := hist[rec.ID]; used {
		if stats.WeeksSince >= 1 && stats.WeeksSince <= len(s.cfg.RecencyPenalties) {
			score -= s.cfg.RecencyPenalties[stats.WeeksSince-1]
		}
		score -= s.cfg.FrequencyPenalty * float64(stats.Count*stats.Count)
	} else {
		score += s.cfg.NoveltyBonus
	}

	for _, cat := range st.RecentCategories {
		if cat != "" && cat == rec.Category {
			score -= s.cfg.RotationPenalty
			break
		}
	}
	if st.CategoryCounts[rec.Category] >= 2 {
		score -= s.cfg.RotationRepeatPenalty
	}

	overlap := 0
	onHand := 0
	for _, id := range rec.IngredientIDs {
		if st.UsedIngredients[id] {
			overlap++
		}
		if st.PantryIDs[id] {
			onHand++
		}
	}
	score += float64(overlap) * s.cfg.OverlapBonus
	if len(rec.IngredientIDs) > 0 {
		score += s.cfg.PantryBonus * float64(onHand) / float64(len(rec.IngredientIDs))
	}

	return score, true
}

func (s *Scorer) noiseFor(recipeID string) float64 {
	if v, ok := s.noise[recipeID]; ok {
		return v
	}
	v := s.rng.Float64() * s.cfg.NoiseMax
	s.noise[recipeID] = v
	return v
}

// recipeCost reads the cached total, zero when the recipe was never costed.
// Uncosted candidates are not excluded; the selector warns about them instead.
func recipeCost(rec recipe.Recipe) float64 {
	if rec.TotalCost == nil {
		return 0
	}
	return *rec.TotalCost
}
