package catalog

import (
	"regexp"
	"strings"
)

// MatchConfig tunes how aggressively free-text lines bind to catalog entries.
// The thresholds were magic numbers scattered through earlier script variants;
// they live here so matching behavior is tunable and testable in isolation.
type MatchConfig struct {
	// MinTokenOverlap gates the graded token-overlap score: shared tokens
	// divided by the larger token count must reach this ratio.
	MinTokenOverlap float64

	// MinScore is the floor (0-100) under which a line stays unmatched.
	MinScore float64

	// LowConfidence marks accepted matches that still deserve a warning.
	LowConfidence float64
}

// DefaultMatchConfig returns the tuned defaults.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		MinTokenOverlap: 0.6,
		MinScore:        40,
		LowConfidence:   70,
	}
}

const (
	scoreExact    = 100
	scoreContains = 80
)

// prepPrefixes are preparation-state words stripped before matching:
// "diced onion" and "onion" are the same purchase.
var prepPrefixes = map[string]bool{
	"fresh": true, "dried": true, "frozen": true, "canned": true,
	"jarred": true, "bottled": true, "ground": true, "sliced": true,
	"diced": true, "chopped": true, "minced": true, "grated": true,
	"shredded": true, "crushed": true, "whole": true, "halved": true,
	"quartered": true, "cooked": true, "large": true, "small": true,
	"medium": true,
}

var punctuation = regexp.MustCompile(`[^a-z0-9 ]+`)
var whitespace = regexp.MustCompile(`\s+`)

// NormalizeName lower-cases, strips punctuation, collapses whitespace and
// drops leading preparation-state words.
func NormalizeName(name string) string {
	s := strings.ToLower(name)
	s = punctuation.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), " ")

	tokens := strings.Split(s, " ")
	for len(tokens) > 1 && prepPrefixes[tokens[0]] {
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}

// Match is an accepted binding of a free-text name to a catalog entry.
type Match struct {
	Ingredient Ingredient
	Score      float64
}

// LowConfidence reports whether the match cleared the floor but should still
// be flagged for review.
func (m Match) LowConfidence(cfg MatchConfig) bool {
	return m.Score < cfg.LowConfidence
}

// BestMatch resolves a free-text ingredient name against a candidate set,
// typically the recipe's already-linked ingredients rather than the whole
// catalog. Returns false when nothing clears the configured floor.
//
// Ties break toward the candidate most recently used in a successful costing,
// then toward the smaller id, so resolution never depends on slice or map
// ordering.
func BestMatch(name string, candidates []Ingredient, cfg MatchConfig) (Match, bool) {
	norm := NormalizeName(name)
	if norm == "" {
		return Match{}, false
	}

	best := Match{Score: -1}
	for _, cand := range candidates {
		score := scoreNames(norm, NormalizeName(cand.Name), cfg)
		if score < cfg.MinScore {
			continue
		}
		switch {
		case score > best.Score:
			best = Match{Ingredient: cand, Score: score}
		case score == best.Score && preferOver(cand, best.Ingredient):
			best = Match{Ingredient: cand, Score: score}
		}
	}

	if best.Score < 0 {
		return Match{}, false
	}
	return best, true
}

func preferOver(a, b Ingredient) bool {
	if !a.LastCostedAt.Equal(b.LastCostedAt) {
		return a.LastCostedAt.After(b.LastCostedAt)
	}
	return a.ID < b.ID
}

func scoreNames(a, b string, cfg MatchConfig) float64 {
	if b == "" {
		return 0
	}
	if a == b {
		return scoreExact
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return scoreContains
	}

	aTokens := strings.Split(a, " ")
	bTokens := strings.Split(b, " ")
	bSet := make(map[string]bool, len(bTokens))
	for _, t := range bTokens {
		bSet[t] = true
	}
	shared := 0
	for _, t := range aTokens {
		if bSet[t] {
			shared++
		}
	}
	maxLen := len(aTokens)
	if len(bTokens) > maxLen {
		maxLen = len(bTokens)
	}
	overlap := float64(shared) / float64(maxLen)
	if overlap < cfg.MinTokenOverlap {
		return 0
	}
	return overlap * 100
}
