package aggregates_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/skillgraph-backend/internal/data/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/platform/neo4jdb"
)

type graphFixture struct {
	client    *neo4jdb.Client
	studentID string
	weakID    string
	facultyID string
	otherID   string
	openingID string
}

func newGraphFixture(t *testing.T) *graphFixture {
	t.Helper()
	uri := os.Getenv("TEST_NEO4J_URI")
	if uri == "" {
		t.Skip("TEST_NEO4J_URI not set")
	}
	t.Setenv("NEO4J_URI", uri)
	client, err := neo4jdb.NewFromEnv(logger.Nop())
	if err != nil {
		t.Fatalf("neo4j connect: %v", err)
	}
	f := &graphFixture{
		client:    client,
		studentID: "s-" + uuid.NewString(),
		weakID:    "s-" + uuid.NewString(),
		facultyID: "f-" + uuid.NewString(),
		otherID:   "f-" + uuid.NewString(),
		openingID: "o-" + uuid.NewString(),
	}
	ctx := context.Background()
	deadline := time.Now().UTC().AddDate(0, 0, 14)
	_, err = client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
CREATE (s:User:Student {user_id: $student_id, name: 'Asha', batch: 2026, cgpa: 8.6})
CREATE (w:User:Student {user_id: $weak_id, name: 'Ravi', batch: 2026, cgpa: 7.5})
CREATE (f:User:Faculty {user_id: $faculty_id, name: 'Dr. Rao'})
CREATE (g:User:Faculty {user_id: $other_id, name: 'Dr. Iyer'})
CREATE (o:Opening {id: $opening_id, title: 'Graph ML', status: 'Active', min_cgpa: 8.0,
                   target_years: [2026], deadline: date($deadline), created_at: datetime()})
CREATE (f)-[:POSTED]->(o)
`, map[string]any{
			"student_id": f.studentID,
			"weak_id":    f.weakID,
			"faculty_id": f.facultyID,
			"other_id":   f.otherID,
			"opening_id": f.openingID,
			"deadline":   deadline.Format("2006-01-02"),
		})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		t.Fatalf("seed graph: %v", err)
	}
	t.Cleanup(func() {
		_, _ = client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			res, err := tx.Run(ctx, `
MATCH (n) WHERE n.user_id IN $users OR n.id = $opening_id
DETACH DELETE n
`, map[string]any{
				"users":      []string{f.studentID, f.weakID, f.facultyID, f.otherID},
				"opening_id": f.openingID,
			})
			if err != nil {
				return nil, err
			}
			_, err = res.Consume(ctx)
			return nil, err
		})
		_ = client.Close(ctx)
	})
	return f
}

func (f *graphFixture) aggregate(hooks aggregates.Hooks) domainagg.ApplicationAggregate {
	return aggregates.NewApplicationAggregate(aggregates.ApplicationAggregateDeps{
		Base: aggregates.BaseDeps{Graph: f.client, Log: logger.Nop(), Hooks: hooks},
	})
}

func (f *graphFixture) apply(t *testing.T, agg domainagg.ApplicationAggregate, studentID string) (domainagg.ApplyResult, error) {
	t.Helper()
	return agg.Apply(context.Background(), domainagg.ApplyInput{
		StudentID:     studentID,
		OpeningID:     f.openingID,
		ApplicationID: uuid.NewString(),
		Now:           time.Now().UTC(),
	})
}

func TestApplicationLifecycleIntegration(t *testing.T) {
	f := newGraphFixture(t)
	hooks := &testutil.HooksRecorder{}
	agg := f.aggregate(hooks)
	ctx := context.Background()

	applied, err := f.apply(t, agg, f.studentID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if applied.Application.Status != domain.ApplicationPending || applied.FacultyID != f.facultyID {
		t.Fatalf("unexpected apply result: %+v", applied)
	}
	if applied.Application.FacultyName != "Dr. Rao" || applied.Application.OpeningTitle != "Graph ML" {
		t.Fatalf("unexpected apply view: %+v", applied.Application)
	}

	if _, err := f.apply(t, agg, f.studentID); domainagg.ReasonOf(err) != domainagg.ReasonDuplicate {
		t.Fatalf("second apply: expected duplicate, got %v", err)
	}

	_, err = agg.UpdateStatus(ctx, domainagg.UpdateStatusInput{
		FacultyID:     f.otherID,
		ApplicationID: applied.Application.ApplicationID,
		Status:        domain.ApplicationAccepted,
	})
	if !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("non-owner update: expected forbidden, got %v", err)
	}

	accepted, err := agg.UpdateStatus(ctx, domainagg.UpdateStatusInput{
		FacultyID:     f.facultyID,
		ApplicationID: applied.Application.ApplicationID,
		Status:        domain.ApplicationAccepted,
	})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Application.Status != domain.ApplicationAccepted || accepted.StudentID != f.studentID || accepted.Application.UpdatedAt == nil {
		t.Fatalf("unexpected accept result: %+v", accepted)
	}

	_, err = agg.UpdateStatus(ctx, domainagg.UpdateStatusInput{
		FacultyID:     f.facultyID,
		ApplicationID: applied.Application.ApplicationID,
		Status:        domain.ApplicationAccepted,
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("re-accept: expected conflict, got %v", err)
	}

	_, err = agg.Withdraw(ctx, domainagg.WithdrawInput{StudentID: f.studentID, OpeningID: f.openingID})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("withdraw accepted: expected conflict, got %v", err)
	}
	if len(hooks.Conflicts) != 2 {
		t.Fatalf("expected two conflict signals, got %+v", hooks.Conflicts)
	}
}

func TestApplicationIneligibleIntegration(t *testing.T) {
	f := newGraphFixture(t)
	agg := f.aggregate(nil)
	if _, err := f.apply(t, agg, f.weakID); domainagg.ReasonOf(err) != domainagg.ReasonCGPA {
		t.Fatalf("expected cgpa ineligibility, got %v", err)
	}
	if _, err := f.apply(t, agg, f.facultyID); !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("faculty apply: expected forbidden, got %v", err)
	}
}

func TestApplicationWithdrawIntegration(t *testing.T) {
	f := newGraphFixture(t)
	agg := f.aggregate(nil)
	ctx := context.Background()
	applied, err := f.apply(t, agg, f.studentID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	out, err := agg.Withdraw(ctx, domainagg.WithdrawInput{StudentID: f.studentID, OpeningID: f.openingID})
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if out.ApplicationID != applied.Application.ApplicationID || out.FacultyID != f.facultyID {
		t.Fatalf("unexpected withdraw result: %+v", out)
	}
	if _, err := agg.Withdraw(ctx, domainagg.WithdrawInput{StudentID: f.studentID, OpeningID: f.openingID}); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("second withdraw: expected not_found, got %v", err)
	}
	// The pair is free again after a withdrawal.
	if _, err := f.apply(t, agg, f.studentID); err != nil {
		t.Fatalf("re-apply after withdraw: %v", err)
	}
}

func TestConcurrentApplyIntegration(t *testing.T) {
	f := newGraphFixture(t)
	agg := f.aggregate(nil)

	const workers = 4
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.apply(t, agg, f.studentID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case domainagg.ReasonOf(err) == domainagg.ReasonDuplicate:
		default:
			t.Fatalf("unexpected apply error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one successful apply, got %d", ok)
	}
}

func TestConcurrentUpdateStatusIntegration(t *testing.T) {
	f := newGraphFixture(t)
	agg := f.aggregate(nil)
	ctx := context.Background()

	applied, err := f.apply(t, agg, f.studentID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	appID := applied.Application.ApplicationID

	const workers = 6
	var wg sync.WaitGroup
	errs := make([]error, workers)
	results := make([]domainagg.UpdateStatusResult, workers)
	for i := 0; i < workers; i++ {
		status := domain.ApplicationAccepted
		if i%2 == 1 {
			status = domain.ApplicationRejected
		}
		wg.Add(1)
		go func(i int, status domain.ApplicationStatus) {
			defer wg.Done()
			results[i], errs[i] = agg.UpdateStatus(ctx, domainagg.UpdateStatusInput{
				FacultyID:     f.facultyID,
				ApplicationID: appID,
				Status:        status,
			})
		}(i, status)
	}
	wg.Wait()

	var winner domain.ApplicationStatus
	ok := 0
	for i, err := range errs {
		switch {
		case err == nil:
			ok++
			winner = results[i].Application.Status
		case domainagg.IsCode(err, domainagg.CodeConflict):
		default:
			t.Fatalf("unexpected update error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one successful decision, got %d", ok)
	}

	out, err := f.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH ()-[a:APPLIED {application_id: $application_id}]->()
RETURN a.status AS status, a._lock IS NULL AS unlocked
`, map[string]any{"application_id": appID})
		if err != nil {
			return nil, err
		}
		return res.Single(ctx)
	})
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	rec := out.(*neo4j.Record)
	status, _ := rec.Get("status")
	unlocked, _ := rec.Get("unlocked")
	if status != string(winner) {
		t.Fatalf("stored status %v, winning decision %s", status, winner)
	}
	if unlocked != true {
		t.Fatalf("lock marker left on the edge")
	}
}
