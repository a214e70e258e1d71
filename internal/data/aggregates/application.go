package aggregates

import (
	"context"
	"strings"
	"time"

	"github.com/yungbote/skillgraph-backend/internal/data/graph"
	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/matching"
)

type ApplicationAggregateDeps struct {
	Base BaseDeps
	// Location decides the calendar day deadlines are compared against.
	Location *time.Location
}

type applicationAggregate struct {
	deps ApplicationAggregateDeps
}

func NewApplicationAggregate(deps ApplicationAggregateDeps) domainagg.ApplicationAggregate {
	deps.Base = deps.Base.withDefaults()
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &applicationAggregate{deps: deps}
}

func (a *applicationAggregate) Contract() domainagg.Contract {
	return domainagg.ApplicationAggregateContract
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func (a *applicationAggregate) Apply(ctx context.Context, in domainagg.ApplyInput) (domainagg.ApplyResult, error) {
	const op = "application.apply"
	var out domainagg.ApplyResult
	in.StudentID = strings.TrimSpace(in.StudentID)
	in.OpeningID = strings.TrimSpace(in.OpeningID)
	in.ApplicationID = strings.TrimSpace(in.ApplicationID)
	if in.StudentID == "" || in.OpeningID == "" || in.ApplicationID == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "student_id, opening_id and application_id are required", nil)
	}
	if in.Now.IsZero() {
		in.Now = time.Now().UTC()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(tc TxContext) error {
		student, err := graph.ReadPerson(tc.Ctx, tc.Tx, in.StudentID)
		if err != nil {
			return err
		}
		if student == nil {
			return domainagg.NotFound(op, "student not found")
		}
		if err := RequireRole(op, student.Role, domain.RoleStudent); err != nil {
			return err
		}
		opening, err := graph.ReadOpening(tc.Ctx, tc.Tx, in.OpeningID)
		if err != nil {
			return err
		}
		if opening == nil {
			return domainagg.NotFound(op, "opening not found")
		}
		existing, err := graph.ReadApplicationFor(tc.Ctx, tc.Tx, in.StudentID, in.OpeningID)
		if err != nil {
			return err
		}

		decision := matching.Check(matching.SnapshotOf(student, opening, existing != nil), in.Now, a.deps.Location)
		if !decision.Eligible {
			return domainagg.Ineligible(op, decision.Reason)
		}

		// MERGE locks both endpoints, so a concurrent apply either sees our edge or we see theirs.
		res, err := tc.Tx.Run(tc.Ctx, `
MATCH (s:User {user_id: $student_id})
MATCH (o:Opening {id: $opening_id})
MERGE (s)-[a:APPLIED]->(o)
ON CREATE SET a.application_id = $application_id,
              a.status = 'Pending',
              a.applied_at = $now
RETURN a.application_id AS application_id
`, map[string]any{
			"student_id":     in.StudentID,
			"opening_id":     in.OpeningID,
			"application_id": in.ApplicationID,
			"now":            stamp(in.Now),
		})
		if err != nil {
			return err
		}
		rec, err := res.Single(tc.Ctx)
		if err != nil {
			return err
		}
		got, _ := rec.Get("application_id")
		if id, _ := got.(string); id != in.ApplicationID {
			return domainagg.Ineligible(op, domainagg.ReasonDuplicate)
		}

		out = domainagg.ApplyResult{
			Application: domain.ApplicationView{
				ApplicationID: in.ApplicationID,
				Status:        domain.ApplicationPending,
				OpeningID:     opening.ID,
				OpeningTitle:  opening.Title,
				StudentID:     student.UserID,
				StudentName:   student.Name,
				FacultyID:     opening.FacultyID,
				FacultyName:   opening.FacultyName,
				AppliedAt:     in.Now.UTC(),
			},
			FacultyID: opening.FacultyID,
		}
		return nil
	})
	if err != nil {
		return domainagg.ApplyResult{}, err
	}
	return out, nil
}

func (a *applicationAggregate) UpdateStatus(ctx context.Context, in domainagg.UpdateStatusInput) (domainagg.UpdateStatusResult, error) {
	const op = "application.update_status"
	var out domainagg.UpdateStatusResult
	in.FacultyID = strings.TrimSpace(in.FacultyID)
	in.ApplicationID = strings.TrimSpace(in.ApplicationID)
	if in.FacultyID == "" || in.ApplicationID == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "faculty_id and application_id are required", nil)
	}
	if !domain.ApplicationPending.CanTransitionTo(in.Status) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "status must be Accepted or Rejected", nil)
	}
	if in.Now.IsZero() {
		in.Now = time.Now().UTC()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(tc TxContext) error {
		// Lock before reading so two decisions on one application serialize.
		found, err := graph.LockApplication(tc.Ctx, tc.Tx, in.ApplicationID)
		if err != nil {
			return err
		}
		if !found {
			return domainagg.NotFound(op, "application not found")
		}
		view, err := graph.ReadApplicationView(tc.Ctx, tc.Tx, in.ApplicationID)
		if err != nil {
			return err
		}
		if view == nil {
			return domainagg.NotFound(op, "application not found")
		}
		if err := RequireOwner(op, view.FacultyID, in.FacultyID); err != nil {
			return err
		}
		if !view.Status.CanTransitionTo(in.Status) {
			return domainagg.StateConflict(op, "application is not pending")
		}

		res, err := tc.Tx.Run(tc.Ctx, `
MATCH (:User)-[a:APPLIED {application_id: $application_id}]->(:Opening)
WHERE toLower(a.status) = 'pending'
SET a.status = $status, a.updated_at = $now
RETURN count(a) AS n
`, map[string]any{
			"application_id": in.ApplicationID,
			"status":         string(in.Status),
			"now":            stamp(in.Now),
		})
		if err != nil {
			return err
		}
		rec, err := res.Single(tc.Ctx)
		if err != nil {
			return err
		}
		n, _ := rec.Get("n")
		if err := RequireCASSuccess(asCount(n) > 0, "application is not pending"); err != nil {
			return err
		}

		updated := in.Now.UTC()
		view.Status = in.Status
		view.UpdatedAt = &updated
		out = domainagg.UpdateStatusResult{Application: *view, StudentID: view.StudentID}
		return nil
	})
	if err != nil {
		return domainagg.UpdateStatusResult{}, err
	}
	return out, nil
}

func (a *applicationAggregate) Withdraw(ctx context.Context, in domainagg.WithdrawInput) (domainagg.WithdrawResult, error) {
	const op = "application.withdraw"
	var out domainagg.WithdrawResult
	in.StudentID = strings.TrimSpace(in.StudentID)
	in.OpeningID = strings.TrimSpace(in.OpeningID)
	if in.StudentID == "" || in.OpeningID == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "student_id and opening_id are required", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(tc TxContext) error {
		found, err := graph.LockApplicationFor(tc.Ctx, tc.Tx, in.StudentID, in.OpeningID)
		if err != nil {
			return err
		}
		if !found {
			return domainagg.NotFound(op, "application not found")
		}
		view, err := graph.ReadApplicationFor(tc.Ctx, tc.Tx, in.StudentID, in.OpeningID)
		if err != nil {
			return err
		}
		if view == nil {
			return domainagg.NotFound(op, "application not found")
		}
		if view.Status != domain.ApplicationPending {
			return domainagg.StateConflict(op, "application is not pending")
		}

		res, err := tc.Tx.Run(tc.Ctx, `
OPTIONAL MATCH (:User {user_id: $student_id})-[a:APPLIED {application_id: $application_id}]->(:Opening {id: $opening_id})
WHERE toLower(a.status) = 'pending'
WITH collect(a) AS rels
FOREACH (r IN rels | DELETE r)
RETURN size(rels) AS n
`, map[string]any{
			"student_id":     in.StudentID,
			"opening_id":     in.OpeningID,
			"application_id": view.ApplicationID,
		})
		if err != nil {
			return err
		}
		rec, err := res.Single(tc.Ctx)
		if err != nil {
			return err
		}
		n, _ := rec.Get("n")
		if err := RequireCASSuccess(asCount(n) > 0, "application is not pending"); err != nil {
			return err
		}

		out = domainagg.WithdrawResult{
			ApplicationID: view.ApplicationID,
			OpeningID:     view.OpeningID,
			FacultyID:     view.FacultyID,
		}
		return nil
	})
	if err != nil {
		return domainagg.WithdrawResult{}, err
	}
	return out, nil
}

func asCount(v any) int64 {
	n, _ := v.(int64)
	return n
}
