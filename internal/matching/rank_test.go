package matching

import (
	"testing"
	"time"

	"github.com/yungbote/skillgraph-backend/internal/domain"
)

func cand(id string, score int, created time.Time) Candidate {
	return Candidate{
		Recommendation: domain.Recommendation{EntityID: id, MatchScore: score},
		CreatedAt:      created,
	}
}

func ids(recs []domain.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.EntityID
	}
	return out
}

func TestRankOrdering(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []Candidate{
		cand("a", 50, base),
		cand("b", 80, base),
		cand("c", 50, base.Add(time.Hour)),
		cand("d", 50, base),
	}
	got := ids(Rank(in, 10))
	want := []string{"b", "c", "a", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rank = %v, want %v", got, want)
		}
	}
	if in[0].Recommendation.EntityID != "a" {
		t.Fatalf("Rank mutated its input")
	}
}

func TestRankLimit(t *testing.T) {
	in := []Candidate{cand("a", 1, time.Time{}), cand("b", 2, time.Time{}), cand("c", 3, time.Time{})}
	if got := Rank(in, 2); len(got) != 2 || got[0].EntityID != "c" {
		t.Fatalf("unexpected truncation: %v", ids(got))
	}
	if got := Rank(in, 0); got == nil || len(got) != 0 {
		t.Fatalf("limit 0 should yield an empty non-nil list, got %v", got)
	}
}
