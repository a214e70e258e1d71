package matching

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	if got := Cosine([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical vectors = %v, want 1", got)
	}
	if got := Cosine([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Fatalf("orthogonal vectors = %v, want 0", got)
	}
	if got := Cosine([]float32{1, 0}, []float32{-1, 0}); got != 0 {
		t.Fatalf("opposite vectors should clip to 0, got %v", got)
	}
	if got := Cosine([]float32{1, 2}, []float32{1}); got != 0 {
		t.Fatalf("length mismatch = %v, want 0", got)
	}
	if got := Cosine([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Fatalf("zero norm = %v, want 0", got)
	}
}

func TestRoundPercent(t *testing.T) {
	if got := RoundPercent(0.123456); got != 12.35 {
		t.Fatalf("RoundPercent = %v, want 12.35", got)
	}
	if got := RoundPercent(1); got != 100 {
		t.Fatalf("RoundPercent(1) = %v, want 100", got)
	}
}

func TestTopK(t *testing.T) {
	q := []float32{1, 0}
	cands := []Vectored{
		{ID: "far", Vector: []float32{0, 1}},
		{ID: "near", Vector: []float32{1, 0.1}},
		{ID: "none"},
		{ID: "mid", Vector: []float32{1, 1}},
	}
	got := TopK(q, cands, 2)
	if len(got) != 2 || got[0].ID != "near" || got[1].ID != "mid" {
		t.Fatalf("TopK = %+v", got)
	}
}

func TestTopKEmptyQuery(t *testing.T) {
	got := TopK(nil, []Vectored{{ID: "a", Vector: []float32{1}}}, 5)
	if got == nil || len(got) != 0 {
		t.Fatalf("empty query should return an empty list, got %v", got)
	}
}
