// Package planner scores candidate recipes for variety and budget fit and
// greedily fills a fixed weekly calendar of cook and leftover slots.
package planner

import (
	"time"
)

// UsageRecord says a recipe was cooked in the week starting at WeekStart.
type UsageRecord struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipe_id"`
	WeekStart time.Time `json:"week_start"`
}

// UsageStats summarizes one recipe's usage inside the lookback window.
type UsageStats struct {
	// WeeksSince is how many weeks ago the most recent use was, 1 meaning
	// the immediately preceding week.
	WeeksSince int
	// Count is the number of uses inside the window.
	Count int
}

// History maps recipe id to its usage inside the lookback window.
type History map[string]UsageStats

// BuildHistory folds raw usage records into per-recipe stats relative to the
// week being planned. Records outside the lookback window, in the planned
// week itself, or in the future are ignored.
func BuildHistory(records []UsageRecord, weekStart time.Time, lookbackWeeks int) History {
	h := make(History)
	for _, rec := range records {
		delta := weekStart.Sub(rec.WeekStart)
		if delta <= 0 {
			continue
		}
		weeksAgo := int(delta.Hours() / (24 * 7))
		if weeksAgo < 1 || weeksAgo > lookbackWeeks {
			continue
		}
		stats := h[rec.RecipeID]
		stats.Count++
		if stats.WeeksSince == 0 || weeksAgo < stats.WeeksSince {
			stats.WeeksSince = weeksAgo
		}
		h[rec.RecipeID] = stats
	}
	return h
}
