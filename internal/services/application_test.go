package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

func TestApplyNotifiesOwningFaculty(t *testing.T) {
	agg := &fakeAggregate{applyRes: domainagg.ApplyResult{
		Application: domain.ApplicationView{ApplicationID: "a1", OpeningID: "o1", OpeningTitle: "Graph ML", StudentName: "Asha", Status: domain.ApplicationPending},
		FacultyID:   "f1",
	}}
	spy := &spyNotifications{}
	svc := NewApplicationService(logger.Nop(), agg, &fakeApplications{}, spy)

	view, err := svc.Apply(asStudent("s1"), " o1 ")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if view.ApplicationID != "a1" {
		t.Fatalf("view: %+v", view)
	}
	if agg.applyIn.StudentID != "s1" || agg.applyIn.OpeningID != "o1" {
		t.Fatalf("aggregate input: %+v", agg.applyIn)
	}
	if _, err := uuid.Parse(agg.applyIn.ApplicationID); err != nil {
		t.Fatalf("application id should be a uuid: %q", agg.applyIn.ApplicationID)
	}
	if len(spy.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(spy.sent))
	}
	n := spy.sent[0]
	if n.RecipientID != "f1" || n.Type != domain.NotificationApplicationReceived || n.TriggerID != "s1" || n.TriggerRole != "student" {
		t.Fatalf("notification: %+v", n)
	}
}

func TestApplyRequiresStudent(t *testing.T) {
	agg := &fakeAggregate{}
	svc := NewApplicationService(logger.Nop(), agg, &fakeApplications{}, &spyNotifications{})

	_, err := svc.Apply(asFaculty("f1"), "o1")
	if !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	_, err = svc.Apply(context.Background(), "o1")
	if !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("expected forbidden without identity, got %v", err)
	}
	if agg.calls != 0 {
		t.Fatalf("aggregate must not be reached, calls=%d", agg.calls)
	}
}

func TestApplyIneligibleDoesNotNotify(t *testing.T) {
	agg := &fakeAggregate{err: domainagg.Ineligible("application.apply", domainagg.ReasonDuplicate)}
	spy := &spyNotifications{}
	svc := NewApplicationService(logger.Nop(), agg, &fakeApplications{}, spy)

	_, err := svc.Apply(asStudent("s1"), "o1")
	if domainagg.ReasonOf(err) != domainagg.ReasonDuplicate {
		t.Fatalf("expected duplicate reason, got %v", err)
	}
	if len(spy.sent) != 0 {
		t.Fatalf("no notification on failure, got %d", len(spy.sent))
	}
}

func TestUpdateStatus(t *testing.T) {
	agg := &fakeAggregate{updateRes: domainagg.UpdateStatusResult{
		Application: domain.ApplicationView{ApplicationID: "a1", OpeningTitle: "Graph ML", Status: domain.ApplicationAccepted},
		StudentID:   "s1",
	}}
	spy := &spyNotifications{}
	svc := NewApplicationService(logger.Nop(), agg, &fakeApplications{}, spy)

	if _, err := svc.UpdateStatus(asFaculty("f1"), "a1", "Pending"); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("Pending is not a decision, got %v", err)
	}
	view, err := svc.UpdateStatus(asFaculty("f1"), "a1", "accepted")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if view.Status != domain.ApplicationAccepted || agg.updateIn.Status != domain.ApplicationAccepted || agg.updateIn.FacultyID != "f1" {
		t.Fatalf("update: view=%+v in=%+v", view, agg.updateIn)
	}
	if len(spy.sent) != 1 || spy.sent[0].RecipientID != "s1" || spy.sent[0].Type != domain.NotificationApplicationStatus {
		t.Fatalf("notification: %+v", spy.sent)
	}
	if _, err := svc.UpdateStatus(asStudent("s1"), "a1", "Accepted"); !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("students cannot decide, got %v", err)
	}
}

func TestWithdrawAndConflict(t *testing.T) {
	agg := &fakeAggregate{withdraw: domainagg.WithdrawResult{ApplicationID: "a1", OpeningID: "o1"}}
	svc := NewApplicationService(logger.Nop(), agg, &fakeApplications{}, &spyNotifications{})

	id, err := svc.Withdraw(asStudent("s1"), "o1")
	if err != nil || id != "a1" {
		t.Fatalf("Withdraw: id=%q err=%v", id, err)
	}
	agg.err = domainagg.StateConflict("application.withdraw", "application is no longer pending")
	if _, err := svc.Withdraw(asStudent("s1"), "o1"); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListMineByRole(t *testing.T) {
	apps := &fakeApplications{
		student: map[string][]domain.ApplicationView{"s1": {{ApplicationID: "a1"}}},
		faculty: map[string][]domain.ApplicationView{"f1": {{ApplicationID: "a1"}, {ApplicationID: "a2"}}},
	}
	svc := NewApplicationService(logger.Nop(), &fakeAggregate{}, apps, nil)

	mine, err := svc.ListMine(asStudent("s1"))
	if err != nil || len(mine) != 1 {
		t.Fatalf("student list: %v %v", mine, err)
	}
	mine, err = svc.ListMine(asFaculty("f1"))
	if err != nil || len(mine) != 2 {
		t.Fatalf("faculty list: %v %v", mine, err)
	}
	mine, err = svc.ListMine(asStudent("nobody"))
	if err != nil || mine == nil || len(mine) != 0 {
		t.Fatalf("empty list should be non-nil: %v %v", mine, err)
	}
}
