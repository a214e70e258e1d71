package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/matching"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

var recNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newRecService(people *fakePeople, openings *fakeOpenings) *recommendationService {
	svc := NewRecommendationService(logger.Nop(), people, openings, matching.DefaultConfig()).(*recommendationService)
	svc.now = func() time.Time { return recNow }
	return svc
}

func entityIDs(recs []domain.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.EntityID)
	}
	return out
}

func recFixture() (*fakePeople, *fakeOpenings) {
	people := newFakePeople(
		&domain.Person{UserID: "s1", Role: domain.RoleStudent, Name: "Asha", CGPA: ptrFloat(8), Batch: ptrInt(2025),
			Skills: []string{"go", "sql"}, Interests: []string{"graphs", "ml"}},
		&domain.Person{UserID: "s2", Role: domain.RoleStudent, Name: "Ben", CGPA: ptrFloat(6.5), Batch: ptrInt(2026),
			Skills: []string{"go", "rust", "ml"}},
		&domain.Person{UserID: "s3", Role: domain.RoleStudent, Name: "Cy", Skills: nil},
		&domain.Person{UserID: "f1", Role: domain.RoleFaculty, Name: "Dr. F", Interests: []string{"ml", "rust"}},
		&domain.Person{UserID: "f2", Role: domain.RoleFaculty, Name: "Dr. G", Interests: []string{"graphs", "ml"}},
	)
	openings := newFakeOpenings(
		&domain.Opening{ID: "o1", FacultyID: "f1", Status: domain.OpeningActive, RequiredConcepts: []string{"go", "sql"},
			CreatedAt: recNow.Add(-24 * time.Hour)},
		&domain.Opening{ID: "o2", FacultyID: "f1", Status: domain.OpeningActive, RequiredConcepts: []string{"go", "rust"},
			CreatedAt: recNow.Add(-10 * 24 * time.Hour)},
		&domain.Opening{ID: "o3", FacultyID: "f1", Status: domain.OpeningClosed, RequiredConcepts: []string{"go"}},
		&domain.Opening{ID: "o4", FacultyID: "f2", Status: domain.OpeningActive, RequiredConcepts: []string{"go"},
			MinCGPA: ptrFloat(9)},
		&domain.Opening{ID: "o5", FacultyID: "f2", Status: domain.OpeningActive, RequiredConcepts: []string{"go"}},
		&domain.Opening{ID: "o6", FacultyID: "f2", Status: domain.OpeningActive,
			CreatedAt: recNow.Add(-40 * 24 * time.Hour)},
		&domain.Opening{ID: "o7", FacultyID: "f2", Status: domain.OpeningActive, RequiredConcepts: []string{"go"},
			Deadline: ptrTime(recNow.Add(-48 * time.Hour))},
	)
	openings.markApplied("s1", "o5")
	return people, openings
}

func TestOpeningsForStudent(t *testing.T) {
	people, openings := recFixture()
	svc := newRecService(people, openings)

	recs, err := svc.OpeningsForStudent(context.Background(), "s1", 10)
	if err != nil {
		t.Fatalf("OpeningsForStudent: %v", err)
	}
	if got, want := entityIDs(recs), []string{"o1", "o2", "o6"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order: want=%v got=%v", want, got)
	}
	if recs[0].MatchScore != 100 {
		t.Fatalf("fresh full match should clip at 100, got %d", recs[0].MatchScore)
	}
	if recs[1].MatchScore != 50 {
		t.Fatalf("neutral half match: want 50 got %d", recs[1].MatchScore)
	}
	if recs[2].MatchScore != 0 {
		t.Fatalf("opening without requirements scores 0, got %d", recs[2].MatchScore)
	}
	if got := recs[0].MatchedConceptNames; !reflect.DeepEqual(got, []string{"go", "sql"}) {
		t.Fatalf("matched concepts: %v", got)
	}
	if recs[0].DisplayFields["faculty_id"] != "f1" {
		t.Fatalf("display fields not passed through: %+v", recs[0].DisplayFields)
	}
}

func TestOpeningsForStudentLimit(t *testing.T) {
	people, openings := recFixture()
	svc := newRecService(people, openings)

	recs, err := svc.OpeningsForStudent(context.Background(), "s1", 0)
	if err != nil {
		t.Fatalf("limit 0: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("limit 0 should yield an empty list, got %v", recs)
	}
	recs, err = svc.OpeningsForStudent(context.Background(), "s1", 1)
	if err != nil {
		t.Fatalf("limit 1: %v", err)
	}
	if got := entityIDs(recs); !reflect.DeepEqual(got, []string{"o1"}) {
		t.Fatalf("limit 1: %v", got)
	}
}

func TestOpeningsForStudentRejectsFaculty(t *testing.T) {
	people, openings := recFixture()
	svc := newRecService(people, openings)
	_, err := svc.OpeningsForStudent(context.Background(), "f1", 5)
	if !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestOpeningsForStudentUnknownStudent(t *testing.T) {
	people, openings := recFixture()
	svc := newRecService(people, openings)
	_, err := svc.OpeningsForStudent(context.Background(), "nobody", 5)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestMentorsForStudent(t *testing.T) {
	people, openings := recFixture()
	svc := newRecService(people, openings)

	recs, err := svc.MentorsForStudent(context.Background(), "s1", 5)
	if err != nil {
		t.Fatalf("MentorsForStudent: %v", err)
	}
	// s1 interests {graphs, ml}: f2 covers both, f1 covers ml.
	if got, want := entityIDs(recs), []string{"f2", "f1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order: want=%v got=%v", want, got)
	}
	if recs[0].MatchScore != 100 || recs[1].MatchScore != 50 {
		t.Fatalf("scores: %d %d", recs[0].MatchScore, recs[1].MatchScore)
	}
}

func TestMentorsForStudentWithoutInterests(t *testing.T) {
	people, openings := recFixture()
	svc := newRecService(people, openings)

	recs, err := svc.MentorsForStudent(context.Background(), "s3", 5)
	if err != nil {
		t.Fatalf("MentorsForStudent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected every faculty with a zero score, got %d", len(recs))
	}
	for _, r := range recs {
		if r.MatchScore != 0 {
			t.Fatalf("expected zero score, got %d for %s", r.MatchScore, r.EntityID)
		}
	}
	// Ties keep pool order.
	if got := entityIDs(recs); !reflect.DeepEqual(got, []string{"f1", "f2"}) {
		t.Fatalf("tie order: %v", got)
	}
}

func TestStudentsForFaculty(t *testing.T) {
	people, openings := recFixture()
	svc := newRecService(people, openings)

	recs, err := svc.StudentsForFaculty(context.Background(), "f1", 5)
	if err != nil {
		t.Fatalf("StudentsForFaculty: %v", err)
	}
	// f1 interests {ml, rust}: s2 has both, s1 and s3 none.
	if got, want := entityIDs(recs), []string{"s2", "s1", "s3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order: want=%v got=%v", want, got)
	}
	if recs[0].MatchScore != 100 {
		t.Fatalf("score: %d", recs[0].MatchScore)
	}
}

func TestStudentsForOpening(t *testing.T) {
	people, openings := recFixture()
	openings.byID["o1"].MinCGPA = ptrFloat(7)
	openings.markApplied("s3", "o1")
	svc := newRecService(people, openings)

	recs, err := svc.StudentsForOpening(context.Background(), "f1", "o1", 5)
	if err != nil {
		t.Fatalf("StudentsForOpening: %v", err)
	}
	// s2 fails cgpa, s3 already applied (and has no cgpa).
	if got := entityIDs(recs); !reflect.DeepEqual(got, []string{"s1"}) {
		t.Fatalf("eligible students: %v", got)
	}
}

func TestStudentsForOpeningRequiresOwner(t *testing.T) {
	people, openings := recFixture()
	svc := newRecService(people, openings)
	_, err := svc.StudentsForOpening(context.Background(), "f2", "o1", 5)
	if !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
}

func TestOpeningMatch(t *testing.T) {
	people, openings := recFixture()
	svc := newRecService(people, openings)

	m, err := svc.OpeningMatch(context.Background(), "s1", "o2")
	if err != nil {
		t.Fatalf("OpeningMatch: %v", err)
	}
	if !m.Eligible || m.BaseScore != 50 || m.MatchScore != 50 {
		t.Fatalf("unexpected match: %+v", m)
	}
	if !reflect.DeepEqual(m.MissingConceptNames, []string{"rust"}) {
		t.Fatalf("missing: %v", m.MissingConceptNames)
	}

	m, err = svc.OpeningMatch(context.Background(), "s1", "o7")
	if err != nil {
		t.Fatalf("OpeningMatch expired: %v", err)
	}
	if m.Eligible || m.Reason != domainagg.ReasonExpired {
		t.Fatalf("expected expired, got %+v", m)
	}
}
