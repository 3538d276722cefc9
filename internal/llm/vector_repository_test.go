package llm

import (
	"math"
	"testing"
)

func TestFloat32ByteRoundTrip(t *testing.T) {
	in := []float32{0.1, -2.5, 3.75, 0, math.MaxFloat32}
	bytes, err := float32SliceToByteSlice(in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	out, err := byteSliceToFloat32Slice(bytes)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("Expected %d floats, got %d", len(in), len(out))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("Index %d: expected %v, got %v", i, in[i], out[i])
		}
	}
}

func TestByteSliceToFloat32SliceInvalidLength(t *testing.T) {
	if _, err := byteSliceToFloat32Slice([]byte{1, 2, 3}); err == nil {
		t.Fatal("Expected an error for a length not divisible by 4, got nil")
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Errorf("Expected identical vectors to score 1, got %v", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Errorf("Expected orthogonal vectors to score 0, got %v", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{-1, 0}); math.Abs(got+1) > 1e-9 {
		t.Errorf("Expected opposite vectors to score -1, got %v", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}); got != 0 {
		t.Errorf("Expected mismatched lengths to score 0, got %v", got)
	}
}
