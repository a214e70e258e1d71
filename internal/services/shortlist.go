package services

import (
	"context"
	"strings"
	"time"

	dataagg "github.com/yungbote/skillgraph-backend/internal/data/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/data/graph"
	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

type ShortlistedStudent struct {
	UserID        string         `json:"user_id"`
	DisplayFields map[string]any `json:"display_fields"`
}

type ShortlistService interface {
	// Shortlist is idempotent; the student is notified only the first time.
	Shortlist(ctx context.Context, studentID string) (created bool, err error)
	List(ctx context.Context) ([]ShortlistedStudent, error)
}

type shortlistService struct {
	log    *logger.Logger
	store  graph.ShortlistStore
	people graph.PeopleStore
	notify NotificationService
	now    func() time.Time
}

func NewShortlistService(log *logger.Logger, store graph.ShortlistStore, people graph.PeopleStore, notify NotificationService) ShortlistService {
	return &shortlistService{
		log:    log.With("service", "ShortlistService"),
		store:  store,
		people: people,
		notify: notify,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *shortlistService) Shortlist(ctx context.Context, studentID string) (bool, error) {
	const op = "shortlist.add"
	id, _, err := caller(ctx, op, domain.RoleFaculty)
	if err != nil {
		return false, err
	}
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return false, domainagg.NewError(domainagg.CodeValidation, op, "student_id required", nil)
	}
	created, err := s.store.Shortlist(ctx, id.UserID, studentID, s.now())
	if err != nil {
		return false, dataagg.MapError(op, err)
	}
	if created && s.notify != nil {
		who := "A faculty member"
		if s.people != nil {
			if fac, err := s.people.GetPerson(ctx, id.UserID); err == nil && fac.Name != "" {
				who = fac.Name
			}
		}
		s.notify.CreateNotification(ctx, NotificationInput{
			RecipientID: studentID,
			Message:     who + " shortlisted your profile",
			Type:        domain.NotificationShortlisted,
			TriggerID:   id.UserID,
			TriggerRole: domain.RoleFaculty.String(),
		})
	}
	return created, nil
}

func (s *shortlistService) List(ctx context.Context) ([]ShortlistedStudent, error) {
	const op = "shortlist.list"
	id, _, err := caller(ctx, op, domain.RoleFaculty)
	if err != nil {
		return nil, err
	}
	people, err := s.store.ListShortlisted(ctx, id.UserID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	out := make([]ShortlistedStudent, 0, len(people))
	for _, p := range people {
		if p == nil {
			continue
		}
		out = append(out, ShortlistedStudent{UserID: p.UserID, DisplayFields: p.DisplayFields()})
	}
	return out, nil
}
