package ingest

import (
	"context"
	"fmt"
	"testing"

	"meal-budget-planner/internal/ghost"
	"meal-budget-planner/internal/llm"
)

type mockTextGenerator struct {
	response    string
	shouldError bool
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if m.shouldError {
		return llm.ContentResponse{}, fmt.Errorf("mock ai error")
	}
	return llm.ContentResponse{Content: m.response}, nil
}

type mockEmbeddingGenerator struct {
	embedding   []float32
	shouldError bool
}

func (m *mockEmbeddingGenerator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.shouldError {
		return nil, fmt.Errorf("mock embedding error")
	}
	return m.embedding, nil
}

func TestNormalizePost(t *testing.T) {
	textGen := &mockTextGenerator{
		response: `{"title":"Chicken Curry","category":"Chicken","ingredients":["1 lb chicken thighs","1 cup rice"],"instructions":"Cook it.","tags":["curry"],"prep_time":"40 mins","servings":4}`,
	}
	embedGen := &mockEmbeddingGenerator{embedding: []float32{0.1, 0.2, 0.3}}

	post := ghost.Post{ID: "abc", Title: "Chicken Curry", HTML: "<h1>Chicken Curry</h1>", UpdatedAt: "2026-08-01T00:00:00Z"}
	res, err := NormalizePost(context.Background(), textGen, embedGen, post)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if res.Recipe.ID != "ghost-abc" {
		t.Errorf("Expected stable id 'ghost-abc', got '%s'", res.Recipe.ID)
	}
	if res.Recipe.Category != "chicken" {
		t.Errorf("Expected lower-cased category 'chicken', got '%s'", res.Recipe.Category)
	}
	if len(res.Recipe.Ingredients) != 2 {
		t.Fatalf("Expected 2 ingredient lines, got %d", len(res.Recipe.Ingredients))
	}
	if len(res.Embedding) != 3 {
		t.Fatalf("Expected a 3-float embedding, got %d", len(res.Embedding))
	}
	if res.Meta.AgentName != "Ingest" {
		t.Errorf("Expected agent name 'Ingest', got '%s'", res.Meta.AgentName)
	}
}

func TestNormalizePostBadJSON(t *testing.T) {
	post := ghost.Post{ID: "abc", Title: "Broken", HTML: "<p>x</p>"}
	_, err := NormalizePost(context.Background(), &mockTextGenerator{response: "nope"}, &mockEmbeddingGenerator{}, post)
	if err == nil {
		t.Fatal("Expected an error for unparseable LLM output, got nil")
	}
}

func TestNormalizePostEmbeddingFailure(t *testing.T) {
	textGen := &mockTextGenerator{
		response: `{"title":"Chicken Curry","category":"chicken","ingredients":["1 lb chicken"],"servings":4}`,
	}
	post := ghost.Post{ID: "abc", Title: "Chicken Curry", HTML: "<p>x</p>"}
	_, err := NormalizePost(context.Background(), textGen, &mockEmbeddingGenerator{shouldError: true}, post)
	if err == nil {
		t.Fatal("Expected an error when embedding fails, got nil")
	}
}
