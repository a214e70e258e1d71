package matching

import (
	"testing"
	"time"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	"github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrT(v time.Time) *time.Time {
	return &v
}

func openSnapshot() Snapshot {
	return Snapshot{
		OpeningStatus: domain.OpeningActive,
		StudentCGPA:   ptrF(8.5),
		StudentBatch:  ptrI(2026),
	}
}

func TestCheck(t *testing.T) {
	now := time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		mutate func(*Snapshot)
		reason string
	}{
		{"eligible", func(*Snapshot) {}, ""},
		{"closed", func(s *Snapshot) { s.OpeningStatus = domain.OpeningClosed }, aggregates.ReasonClosed},
		{"deadline yesterday", func(s *Snapshot) {
			s.Deadline = ptrT(time.Date(2026, 5, 19, 0, 0, 0, 0, time.UTC))
		}, aggregates.ReasonExpired},
		{"deadline today is open", func(s *Snapshot) {
			s.Deadline = ptrT(time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC))
		}, ""},
		{"cgpa below minimum", func(s *Snapshot) {
			s.MinCGPA = ptrF(8.0)
			s.StudentCGPA = ptrF(7.5)
		}, aggregates.ReasonCGPA},
		{"cgpa equal to minimum", func(s *Snapshot) { s.MinCGPA = ptrF(8.5) }, ""},
		{"missing cgpa", func(s *Snapshot) {
			s.MinCGPA = ptrF(6.0)
			s.StudentCGPA = nil
		}, aggregates.ReasonCGPA},
		{"year not targeted", func(s *Snapshot) { s.TargetYears = []int{2025, 2027} }, aggregates.ReasonYear},
		{"year targeted", func(s *Snapshot) { s.TargetYears = []int{2026} }, ""},
		{"missing batch", func(s *Snapshot) {
			s.TargetYears = []int{2026}
			s.StudentBatch = nil
		}, aggregates.ReasonYear},
		{"duplicate", func(s *Snapshot) { s.AlreadyApplied = true }, aggregates.ReasonDuplicate},
		{"closed wins over duplicate", func(s *Snapshot) {
			s.OpeningStatus = domain.OpeningClosed
			s.AlreadyApplied = true
		}, aggregates.ReasonClosed},
		{"cgpa wins over year", func(s *Snapshot) {
			s.MinCGPA = ptrF(9.0)
			s.TargetYears = []int{2030}
		}, aggregates.ReasonCGPA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := openSnapshot()
			tc.mutate(&s)
			d := Check(s, now, time.UTC)
			if tc.reason == "" {
				if !d.Eligible || d.Reason != "" {
					t.Fatalf("expected eligible, got %+v", d)
				}
				return
			}
			if d.Eligible || d.Reason != tc.reason {
				t.Fatalf("expected ineligible(%s), got %+v", tc.reason, d)
			}
		})
	}
}

func TestDeadlineUsesConfiguredZone(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	deadline := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	// 20:00 UTC on the 20th is already the 21st in IST.
	now := time.Date(2026, 5, 20, 20, 0, 0, 0, time.UTC)
	if DeadlinePassed(deadline, now, time.UTC) {
		t.Fatalf("deadline should still be open in UTC")
	}
	if !DeadlinePassed(deadline, now, loc) {
		t.Fatalf("deadline should have passed in IST")
	}
}

func TestSnapshotOf(t *testing.T) {
	student := &domain.Person{UserID: "s1", CGPA: ptrF(7.0), Batch: ptrI(2025)}
	opening := &domain.Opening{ID: "o1", Status: domain.OpeningActive, MinCGPA: ptrF(7.5), TargetYears: []int{2025}}
	s := SnapshotOf(student, opening, false)
	if d := Check(s, time.Now(), time.UTC); d.Reason != aggregates.ReasonCGPA {
		t.Fatalf("expected cgpa reason, got %+v", d)
	}
}
