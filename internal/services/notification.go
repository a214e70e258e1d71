package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	dataagg "github.com/yungbote/skillgraph-backend/internal/data/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/data/repos/notification"
	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/observability"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/realtime"
)

const notificationDeliveryTimeout = 10 * time.Second

type NotificationInput struct {
	RecipientID string
	Message     string
	Type        string
	TriggerID   string
	TriggerRole string
	Payload     map[string]any
}

type NotificationService interface {
	// CreateNotification returns immediately; persistence and fan-out happen in the background.
	CreateNotification(ctx context.Context, in NotificationInput)
	List(ctx context.Context, recipientID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	// Wait blocks until in-flight deliveries finish or ctx is done.
	Wait(ctx context.Context) error
}

type notificationService struct {
	log     *logger.Logger
	repo    notification.NotificationRepo
	emit    SSEEmitter
	metrics *observability.Metrics
	now     func() time.Time
	wg      sync.WaitGroup
}

func NewNotificationService(log *logger.Logger, repo notification.NotificationRepo, emit SSEEmitter) NotificationService {
	return &notificationService{
		log:     log.With("service", "NotificationService"),
		repo:    repo,
		emit:    emit,
		metrics: observability.Current(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, in NotificationInput) {
	in.RecipientID = strings.TrimSpace(in.RecipientID)
	if in.RecipientID == "" || s.repo == nil {
		return
	}
	// Detached from the caller so a finished request does not cancel delivery.
	base := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		dctx, cancel := context.WithTimeout(base, notificationDeliveryTimeout)
		defer cancel()
		s.deliver(dctx, in)
	}()
}

func (s *notificationService) deliver(ctx context.Context, in NotificationInput) {
	n := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: in.RecipientID,
		Message:     in.Message,
		Type:        in.Type,
		TriggerID:   in.TriggerID,
		TriggerRole: in.TriggerRole,
		CreatedAt:   s.now(),
	}
	if len(in.Payload) > 0 {
		if raw, err := json.Marshal(in.Payload); err == nil {
			n.Payload = datatypes.JSON(raw)
		}
	}
	if _, err := s.repo.Create(ctx, nil, n); err != nil {
		s.metrics.IncNotification(in.Type, "error")
		s.log.Warn("notification insert failed",
			"recipient_id", in.RecipientID,
			"type", in.Type,
			"trigger_id", in.TriggerID,
			"error", err,
		)
		return
	}
	s.metrics.IncNotification(in.Type, "success")
	if s.emit != nil {
		s.emit.Emit(ctx, realtime.SSEMessage{
			Channel: realtime.UserChannel(in.RecipientID),
			Event:   realtime.SSEEventNotificationCreated,
			Data:    map[string]any{"notification": n},
		})
	}
}

func (s *notificationService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *notificationService) List(ctx context.Context, recipientID string, limit int) ([]*domain.Notification, error) {
	const op = "notification.list"
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "recipient required", nil)
	}
	if limit <= 0 {
		limit = notification.DefaultListLimit
	}
	out, err := s.repo.ListForRecipient(ctx, nil, recipientID, limit)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if out == nil {
		out = []*domain.Notification{}
	}
	return out, nil
}

func (s *notificationService) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	const op = "notification.mark_read"
	id, err := uuid.Parse(strings.TrimSpace(notificationID))
	if err != nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "invalid notification id", err)
	}
	found, err := s.repo.MarkRead(ctx, nil, id, strings.TrimSpace(recipientID), s.now())
	if err != nil {
		return dataagg.MapError(op, err)
	}
	if !found {
		return domainagg.NotFound(op, "notification not found")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	const op = "notification.mark_all_read"
	n, err := s.repo.MarkAllRead(ctx, nil, strings.TrimSpace(recipientID), s.now())
	if err != nil {
		return 0, dataagg.MapError(op, err)
	}
	return n, nil
}

func (s *notificationService) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	n, err := s.repo.CountUnread(ctx, nil, strings.TrimSpace(recipientID))
	if err != nil {
		return 0, dataagg.MapError("notification.count_unread", err)
	}
	return n, nil
}
