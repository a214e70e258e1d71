package matching

import (
	"math"
	"time"
)

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// Score is round(100 * |required ∩ possessed| / |required|) clipped to [0,100].
// An empty required set scores 0.
func Score(required, possessed []string) int {
	req := toSet(required)
	if len(req) == 0 {
		return 0
	}
	have := toSet(possessed)
	hits := 0
	for c := range req {
		if _, ok := have[c]; ok {
			hits++
		}
	}
	return clip(int(math.Round(100 * float64(hits) / float64(len(req)))))
}

// Matched returns the required concepts the candidate possesses, in required order, deduped.
func Matched(required, possessed []string) []string {
	have := toSet(possessed)
	out := make([]string, 0, len(required))
	seen := make(map[string]struct{}, len(required))
	for _, c := range required {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if _, ok := have[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// AgeDays is the whole number of days between createdAt and now, never negative.
func AgeDays(createdAt, now time.Time) int {
	if createdAt.IsZero() || now.Before(createdAt) {
		return 0
	}
	return int(now.Sub(createdAt).Hours() / 24)
}

func (r RecencyConfig) Multiplier(ageDays int) float64 {
	switch {
	case ageDays < r.FreshDays:
		return r.FreshMultiplier
	case ageDays <= r.StaleDays:
		return r.NeutralMultiplier
	default:
		return r.StaleMultiplier
	}
}

// ApplyRecency scales a base score by the age multiplier and re-rounds and re-clips to [0,100].
func (r RecencyConfig) ApplyRecency(score, ageDays int) int {
	return clip(int(math.Round(float64(clip(score)) * r.Multiplier(ageDays))))
}

func clip(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
