package llm

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"slices"

	db "meal-budget-planner/internal/llm/vector_db"
)

// ScoredRecipe is a similarity-search hit.
type ScoredRecipe struct {
	RecipeID string
	Score    float64
}

// VectorRepository stores recipe embeddings as little-endian float32 blobs
// and answers nearest-neighbor queries by brute-force cosine similarity. The
// catalog is household-sized, so scanning every embedding is fine.
type VectorRepository struct {
	queries *db.Queries
	db      *sql.DB
}

// NewVectorRepository creates a new VectorRepository.
func NewVectorRepository(d *sql.DB) *VectorRepository {
	return &VectorRepository{
		queries: db.New(d),
		db:      d,
	}
}

// Save upserts a recipe's embedding.
func (r *VectorRepository) Save(ctx context.Context, recipeID string, embedding []float32) error {
	embeddingBytes, err := float32SliceToByteSlice(embedding)
	if err != nil {
		return fmt.Errorf("failed to convert float32 slice to byte slice: %w", err)
	}
	return r.queries.InsertEmbedding(ctx, db.InsertEmbeddingParams{
		RecipeID:  recipeID,
		Embedding: embeddingBytes,
	})
}

// Get retrieves a recipe's embedding, nil when absent.
func (r *VectorRepository) Get(ctx context.Context, recipeID string) ([]float32, error) {
	row, err := r.queries.GetEmbeddingByRecipeID(ctx, recipeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get embedding for recipe %s: %w", recipeID, err)
	}
	embedding, err := byteSliceToFloat32Slice(row.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to convert byte slice to float32 slice: %w", err)
	}
	return embedding, nil
}

// Delete removes a recipe's embedding.
func (r *VectorRepository) Delete(ctx context.Context, recipeID string) error {
	return r.queries.DeleteEmbedding(ctx, recipeID)
}

// FindSimilar returns the top recipes by cosine similarity against the
// query embedding, best first, skipping the excluded ids.
func (r *VectorRepository) FindSimilar(ctx context.Context, queryEmbedding []float32, limit int, excludeIDs []string) ([]ScoredRecipe, error) {
	allEmbeddings, err := r.queries.ListAllEmbeddings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all embeddings: %w", err)
	}

	excludeMap := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excludeMap[id] = struct{}{}
	}

	scored := make([]ScoredRecipe, 0, len(allEmbeddings))
	for _, row := range allEmbeddings {
		if _, excluded := excludeMap[row.RecipeID]; excluded {
			continue
		}
		embed, err := byteSliceToFloat32Slice(row.Embedding)
		if err != nil {
			log.Printf("Warning: failed to convert embedding for recipe %s: %v", row.RecipeID, err)
			continue
		}
		scored = append(scored, ScoredRecipe{
			RecipeID: row.RecipeID,
			Score:    cosineSimilarity(queryEmbedding, embed),
		})
	}

	// Best first; ties resolve by id so results are stable.
	slices.SortFunc(scored, func(a, b ScoredRecipe) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.RecipeID, b.RecipeID)
	})

	if limit > len(scored) {
		limit = len(scored)
	}
	return scored[:limit], nil
}

// float32SliceToByteSlice converts a slice of float32 to a byte slice.
func float32SliceToByteSlice(floats []float32) ([]byte, error) {
	if len(floats) == 0 {
		return nil, nil
	}
	buf := make([]byte, 4*len(floats)) // 4 bytes per float32
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(f))
	}
	return buf, nil
}

// byteSliceToFloat32Slice converts a byte slice to a slice of float32.
func byteSliceToFloat32Slice(bytes []byte) ([]float32, error) {
	if len(bytes) == 0 {
		return nil, nil
	}
	if len(bytes)%4 != 0 {
		return nil, fmt.Errorf("byte slice length is not a multiple of 4")
	}
	floats := make([]float32, len(bytes)/4)
	for i := 0; i < len(bytes)/4; i++ {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(bytes[i*4 : (i+1)*4]))
	}
	return floats, nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
