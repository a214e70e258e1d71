package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/skillgraph-backend/internal/data/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/data/graph"
	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

// ApplicationService is the caller-facing lifecycle: it resolves the caller,
// checks role, and delegates the guarded write to the aggregate.
type ApplicationService interface {
	Apply(ctx context.Context, openingID string) (domain.ApplicationView, error)
	UpdateStatus(ctx context.Context, applicationID, status string) (domain.ApplicationView, error)
	Withdraw(ctx context.Context, openingID string) (string, error)
	ListMine(ctx context.Context) ([]domain.ApplicationView, error)
}

type applicationService struct {
	log          *logger.Logger
	aggregate    domainagg.ApplicationAggregate
	applications graph.ApplicationStore
	notify       NotificationService
	now          func() time.Time
}

func NewApplicationService(
	log *logger.Logger,
	aggregate domainagg.ApplicationAggregate,
	applications graph.ApplicationStore,
	notify NotificationService,
) ApplicationService {
	return &applicationService{
		log:          log.With("service", "ApplicationService"),
		aggregate:    aggregate,
		applications: applications,
		notify:       notify,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// caller returns the authenticated identity, requiring role when non-empty.
func caller(ctx context.Context, op string, role domain.Role) (*ctxutil.Identity, domain.Role, error) {
	id := ctxutil.GetIdentity(ctx)
	if id == nil || strings.TrimSpace(id.UserID) == "" {
		return nil, "", domainagg.Forbidden(op, "not authenticated")
	}
	got, err := domain.ParseRole(id.Role)
	if err != nil {
		return nil, "", domainagg.Forbidden(op, "unknown role")
	}
	if role != "" {
		if err := dataagg.RequireRole(op, got, role); err != nil {
			return nil, "", err
		}
	}
	return id, got, nil
}

func (s *applicationService) Apply(ctx context.Context, openingID string) (domain.ApplicationView, error) {
	const op = "application.apply"
	id, _, err := caller(ctx, op, domain.RoleStudent)
	if err != nil {
		return domain.ApplicationView{}, err
	}
	res, err := s.aggregate.Apply(ctx, domainagg.ApplyInput{
		StudentID:     id.UserID,
		OpeningID:     strings.TrimSpace(openingID),
		ApplicationID: uuid.NewString(),
		Now:           s.now(),
	})
	if err != nil {
		return domain.ApplicationView{}, err
	}
	if s.notify != nil && res.FacultyID != "" {
		name := res.Application.StudentName
		if name == "" {
			name = "A student"
		}
		s.notify.CreateNotification(ctx, NotificationInput{
			RecipientID: res.FacultyID,
			Message:     fmt.Sprintf("%s applied to %q", name, res.Application.OpeningTitle),
			Type:        domain.NotificationApplicationReceived,
			TriggerID:   id.UserID,
			TriggerRole: domain.RoleStudent.String(),
			Payload: map[string]any{
				"application_id": res.Application.ApplicationID,
				"opening_id":     res.Application.OpeningID,
			},
		})
	}
	return res.Application, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, applicationID, status string) (domain.ApplicationView, error) {
	const op = "application.update_status"
	id, _, err := caller(ctx, op, domain.RoleFaculty)
	if err != nil {
		return domain.ApplicationView{}, err
	}
	next, ok := domain.ParseDecision(strings.TrimSpace(status))
	if !ok {
		return domain.ApplicationView{}, domainagg.NewError(domainagg.CodeValidation, op, "status must be Accepted or Rejected", nil)
	}
	res, err := s.aggregate.UpdateStatus(ctx, domainagg.UpdateStatusInput{
		FacultyID:     id.UserID,
		ApplicationID: strings.TrimSpace(applicationID),
		Status:        next,
		Now:           s.now(),
	})
	if err != nil {
		return domain.ApplicationView{}, err
	}
	if s.notify != nil && res.StudentID != "" {
		s.notify.CreateNotification(ctx, NotificationInput{
			RecipientID: res.StudentID,
			Message:     fmt.Sprintf("Your application for %q was %s", res.Application.OpeningTitle, strings.ToLower(string(next))),
			Type:        domain.NotificationApplicationStatus,
			TriggerID:   id.UserID,
			TriggerRole: domain.RoleFaculty.String(),
			Payload: map[string]any{
				"application_id": res.Application.ApplicationID,
				"opening_id":     res.Application.OpeningID,
				"status":         string(next),
			},
		})
	}
	return res.Application, nil
}

func (s *applicationService) Withdraw(ctx context.Context, openingID string) (string, error) {
	const op = "application.withdraw"
	id, _, err := caller(ctx, op, domain.RoleStudent)
	if err != nil {
		return "", err
	}
	res, err := s.aggregate.Withdraw(ctx, domainagg.WithdrawInput{
		StudentID: id.UserID,
		OpeningID: strings.TrimSpace(openingID),
	})
	if err != nil {
		return "", err
	}
	return res.ApplicationID, nil
}

// ListMine lists applications sent by a student or received by a faculty member.
func (s *applicationService) ListMine(ctx context.Context) ([]domain.ApplicationView, error) {
	const op = "application.list"
	id, role, err := caller(ctx, op, "")
	if err != nil {
		return nil, err
	}
	var out []domain.ApplicationView
	if role == domain.RoleStudent {
		out, err = s.applications.ListForStudent(ctx, id.UserID)
	} else {
		out, err = s.applications.ListForFaculty(ctx, id.UserID)
	}
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if out == nil {
		out = []domain.ApplicationView{}
	}
	return out, nil
}
