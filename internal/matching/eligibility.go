package matching

import (
	"slices"
	"time"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	"github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
)

// Snapshot is everything eligibility depends on, read at one point in time.
type Snapshot struct {
	OpeningStatus  domain.OpeningStatus
	Deadline       *time.Time
	MinCGPA        *float64
	TargetYears    []int
	StudentCGPA    *float64
	StudentBatch   *int
	AlreadyApplied bool
}

func SnapshotOf(student *domain.Person, opening *domain.Opening, alreadyApplied bool) Snapshot {
	s := Snapshot{AlreadyApplied: alreadyApplied}
	if opening != nil {
		s.OpeningStatus = opening.Status
		s.Deadline = opening.Deadline
		s.MinCGPA = opening.MinCGPA
		s.TargetYears = opening.TargetYears
	}
	if student != nil {
		s.StudentCGPA = student.CGPA
		s.StudentBatch = student.Batch
	}
	return s
}

// Decision is the outcome of an eligibility check. Reason is empty when eligible.
type Decision struct {
	Eligible bool
	Reason   string
}

func ineligible(reason string) Decision { return Decision{Reason: reason} }

// Check evaluates, in order: open status, deadline, minimum CGPA, target years,
// duplicate application. The first unmet condition decides the reason. Missing
// student data fails a constraint that needs it.
func Check(s Snapshot, now time.Time, loc *time.Location) Decision {
	if s.OpeningStatus != domain.OpeningActive {
		return ineligible(aggregates.ReasonClosed)
	}
	if s.Deadline != nil && DeadlinePassed(*s.Deadline, now, loc) {
		return ineligible(aggregates.ReasonExpired)
	}
	if s.MinCGPA != nil {
		if s.StudentCGPA == nil || *s.StudentCGPA < *s.MinCGPA {
			return ineligible(aggregates.ReasonCGPA)
		}
	}
	if len(s.TargetYears) > 0 {
		if s.StudentBatch == nil || !slices.Contains(s.TargetYears, *s.StudentBatch) {
			return ineligible(aggregates.ReasonYear)
		}
	}
	if s.AlreadyApplied {
		return ineligible(aggregates.ReasonDuplicate)
	}
	return Decision{Eligible: true}
}

// DeadlinePassed compares calendar dates: a deadline equal to today is still open.
// The deadline is a date, so its own year/month/day are used as-is.
func DeadlinePassed(deadline, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ty, tm, td := now.In(loc).Date()
	today := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := deadline.Date()
	due := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
