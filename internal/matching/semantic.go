package matching

import (
	"math"
	"sort"
)

// Cosine is dot(a,b)/(|a||b|) clipped to [0,1]. Empty, zero-norm or
// length-mismatched vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	switch {
	case math.IsNaN(sim), sim < 0:
		return 0
	case sim > 1:
		return 1
	default:
		return sim
	}
}

// RoundPercent turns a similarity into a percentage with two decimals.
func RoundPercent(sim float64) float64 {
	return math.Round(sim*100*100) / 100
}

// Vectored is a candidate carrying a stored embedding.
type Vectored struct {
	ID     string
	Vector []float32
}

type Similar struct {
	ID         string
	Similarity float64
}

// TopK ranks candidates by cosine similarity to query (ties keep input order)
// and returns at most k. An empty query yields nothing.
func TopK(query []float32, cands []Vectored, k int) []Similar {
	if len(query) == 0 || k <= 0 || len(cands) == 0 {
		return []Similar{}
	}
	scored := make([]Similar, 0, len(cands))
	for _, c := range cands {
		if len(c.Vector) == 0 {
			continue
		}
		scored = append(scored, Similar{ID: c.ID, Similarity: Cosine(query, c.Vector)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
