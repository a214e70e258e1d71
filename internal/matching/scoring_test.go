package matching

import (
	"reflect"
	"testing"
	"time"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name      string
		required  []string
		possessed []string
		want      int
	}{
		{"half overlap", []string{"python", "ml"}, []string{"python"}, 50},
		{"empty required", nil, []string{"python"}, 0},
		{"empty possessed", []string{"python"}, nil, 0},
		{"full overlap", []string{"go", "sql"}, []string{"sql", "go", "rust"}, 100},
		{"one of three rounds", []string{"a", "b", "c"}, []string{"a"}, 33},
		{"two of three rounds", []string{"a", "b", "c"}, []string{"a", "b"}, 67},
		{"duplicates count once", []string{"a", "a", "b"}, []string{"a"}, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.required, tc.possessed); got != tc.want {
				t.Fatalf("Score(%v, %v) = %d, want %d", tc.required, tc.possessed, got, tc.want)
			}
		})
	}
}

func TestScoreMonotoneInPossessed(t *testing.T) {
	required := []string{"a", "b", "c", "d"}
	possessed := []string{}
	prev := Score(required, possessed)
	for _, c := range []string{"x", "a", "b", "y", "c", "d"} {
		possessed = append(possessed, c)
		got := Score(required, possessed)
		if got < prev {
			t.Fatalf("score dropped from %d to %d after adding %q", prev, got, c)
		}
		if got < 0 || got > 100 {
			t.Fatalf("score %d out of bounds", got)
		}
		prev = got
	}
	if prev != 100 {
		t.Fatalf("expected full overlap to score 100, got %d", prev)
	}
}

func TestMatched(t *testing.T) {
	got := Matched([]string{"ml", "python", "ml", "go"}, []string{"go", "ml"})
	want := []string{"ml", "go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Matched = %v, want %v", got, want)
	}
}

func TestRecencyMultiplier(t *testing.T) {
	r := DefaultConfig().Recency
	cases := []struct {
		age  int
		want float64
	}{
		{0, 1.3}, {6, 1.3}, {7, 1.0}, {30, 1.0}, {31, 0.8}, {365, 0.8},
	}
	for _, tc := range cases {
		if got := r.Multiplier(tc.age); got != tc.want {
			t.Fatalf("Multiplier(%d) = %v, want %v", tc.age, got, tc.want)
		}
	}
}

func TestApplyRecency(t *testing.T) {
	r := DefaultConfig().Recency
	if got := r.ApplyRecency(50, 2); got != 65 {
		t.Fatalf("fresh 50 = %d, want 65", got)
	}
	if got := r.ApplyRecency(90, 1); got != 100 {
		t.Fatalf("fresh 90 should clip to 100, got %d", got)
	}
	if got := r.ApplyRecency(50, 10); got != 50 {
		t.Fatalf("neutral 50 = %d, want 50", got)
	}
	if got := r.ApplyRecency(50, 45); got != 40 {
		t.Fatalf("stale 50 = %d, want 40", got)
	}
	if got := r.ApplyRecency(0, 0); got != 0 {
		t.Fatalf("zero score stays zero, got %d", got)
	}
}

func TestApplyRecencyDeterministic(t *testing.T) {
	r := DefaultConfig().Recency
	for score := 0; score <= 100; score++ {
		for _, age := range []int{0, 7, 31} {
			a := r.ApplyRecency(score, age)
			b := r.ApplyRecency(score, age)
			if a != b {
				t.Fatalf("ApplyRecency(%d,%d) not deterministic: %d vs %d", score, age, a, b)
			}
			if a < 0 || a > 100 {
				t.Fatalf("ApplyRecency(%d,%d) = %d out of bounds", score, age, a)
			}
		}
	}
}

func TestAgeDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := AgeDays(now.Add(-47*time.Hour), now); got != 1 {
		t.Fatalf("47h = %d days, want 1", got)
	}
	if got := AgeDays(now.Add(-48*time.Hour), now); got != 2 {
		t.Fatalf("48h = %d days, want 2", got)
	}
	if got := AgeDays(now.Add(time.Hour), now); got != 0 {
		t.Fatalf("future created_at = %d days, want 0", got)
	}
	if got := AgeDays(time.Time{}, now); got != 0 {
		t.Fatalf("zero created_at = %d days, want 0", got)
	}
}
