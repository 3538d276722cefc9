// Package ingest turns raw Ghost recipe posts into structured recipes, with
// embeddings for similarity discovery.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"meal-budget-planner/internal/ghost"
	"meal-budget-planner/internal/llm"
	"meal-budget-planner/internal/recipe"
	"meal-budget-planner/internal/shared"
)

// Result is one normalized post: the structured recipe, its embedding and
// the token accounting of the normalization.
type Result struct {
	Recipe    recipe.Recipe
	Embedding []float32
	Meta      shared.AgentMeta
}

type normalizedRecipe struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Tags         []string `json:"tags"`
	PrepTime     string   `json:"prep_time"`
	Servings     int      `json:"servings"`
}

// NormalizePost takes a recipe post's HTML and uses the LLM to normalize it
// into a structured recipe, then embeds a semantic summary for discovery.
func NormalizePost(ctx context.Context, textGen llm.TextGenerator, embedGen llm.EmbeddingGenerator, post ghost.Post) (*Result, error) {
	start := time.Now()
	prompt := fmt.Sprintf(`
	You are a helpful assistant that extracts structured recipe information from HTML content.
	Please extract the recipe title, ingredient lines (each starting with quantity and unit when given),
	step-by-step instructions, relevant tags, the main category (the protein or dish type, e.g. "chicken",
	"beef", "vegetarian"), the preparation time (e.g. "30 mins") and the number of servings as an integer.

	Return the output as a JSON object with the following structure:
	{
		"title": "Recipe Name",
		"category": "chicken",
		"ingredients": ["quantity unit name", ...],
		"instructions": "Step-by-step instructions",
		"tags": ["tag1", "tag2"],
		"prep_time": "Estimated time",
		"servings": 4
	}

	Ensure the output is valid JSON. Do not include any other text in your response.
	Return ONLY the raw JSON string. Do not wrap the response in markdown code blocks.

	HTML Content for "%s":
	%s
	`, post.Title, post.HTML)

	resp, err := textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to get LLM response: %w", err)
	}

	var norm normalizedRecipe
	if err := json.Unmarshal([]byte(resp.Content), &norm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LLM response: %w. LLM Response: %s", err, resp.Content)
	}

	rec := recipe.Recipe{
		ID:           postRecipeID(post),
		Title:        norm.Title,
		Category:     strings.ToLower(norm.Category),
		Servings:     norm.Servings,
		Ingredients:  norm.Ingredients,
		Instructions: norm.Instructions,
		Tags:         norm.Tags,
		PrepTime:     norm.PrepTime,
		UpdatedAt:    post.UpdatedAt,
	}

	// A semantic string representation of the recipe for the embedding model.
	embeddingText := fmt.Sprintf("Title: %s\nCategory: %s\nTags: %v\nIngredients: %v\nPrep Time: %s",
		rec.Title, rec.Category, rec.Tags, rec.Ingredients, rec.PrepTime)

	embedding, err := embedGen.GenerateEmbedding(ctx, embeddingText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	return &Result{
		Recipe:    rec,
		Embedding: embedding,
		Meta: shared.AgentMeta{
			AgentName: "Ingest",
			Usage:     resp.Usage,
			Latency:   time.Since(start),
		},
	}, nil
}

// postRecipeID derives a stable recipe id from the post, so re-ingesting
// updates in place instead of duplicating.
func postRecipeID(post ghost.Post) string {
	if post.ID != "" {
		return "ghost-" + post.ID
	}
	return uuid.NewString()
}
