package matching

import (
	"sort"
	"time"

	"github.com/yungbote/skillgraph-backend/internal/domain"
)

// Candidate is a scored result waiting to be ranked. CreatedAt breaks score
// ties (newer first); anything still tied keeps insertion order.
type Candidate struct {
	Recommendation domain.Recommendation
	CreatedAt      time.Time
}

// Rank sorts by score desc, created_at desc, then insertion order, and truncates to limit.
// A limit of zero or less yields an empty list.
func Rank(cands []Candidate, limit int) []domain.Recommendation {
	if limit <= 0 || len(cands) == 0 {
		return []domain.Recommendation{}
	}
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Recommendation.MatchScore != b.Recommendation.MatchScore {
			return a.Recommendation.MatchScore > b.Recommendation.MatchScore
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]domain.Recommendation, len(sorted))
	for i := range sorted {
		out[i] = sorted[i].Recommendation
	}
	return out
}
