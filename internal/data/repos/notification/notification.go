package notification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

const DefaultListLimit = 20

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, n *domain.Notification) (*domain.Notification, error)
	ListForRecipient(ctx context.Context, tx *gorm.DB, recipientID string, limit int) ([]*domain.Notification, error)
	// MarkRead is scoped to the recipient; found is false when the id is not theirs.
	MarkRead(ctx context.Context, tx *gorm.DB, id uuid.UUID, recipientID string, at time.Time) (found bool, err error)
	MarkAllRead(ctx context.Context, tx *gorm.DB, recipientID string, at time.Time) (int64, error)
	CountUnread(ctx context.Context, tx *gorm.DB, recipientID string) (int64, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	repoLog := baseLog.With("repo", "NotificationRepo")
	return &notificationRepo{db: db, log: repoLog}
}

func (r *notificationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *notificationRepo) Create(ctx context.Context, tx *gorm.DB, n *domain.Notification) (*domain.Notification, error) {
	if n == nil {
		return nil, nil
	}
	n.RecipientID = strings.TrimSpace(n.RecipientID)
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := r.conn(tx).WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepo) ListForRecipient(ctx context.Context, tx *gorm.DB, recipientID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var results []*domain.Notification
	if err := r.conn(tx).WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, id uuid.UUID, recipientID string, at time.Time) (bool, error) {
	transaction := r.conn(tx).WithContext(ctx)
	res := transaction.Model(&domain.Notification{}).
		Where("id = ? AND recipient_id = ? AND is_read = ?", id, recipientID, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// Already read counts as success; a foreign or unknown id does not.
	var n int64
	if err := transaction.Model(&domain.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, recipientID string, at time.Time) (int64, error) {
	res := r.conn(tx).WithContext(ctx).Model(&domain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, tx *gorm.DB, recipientID string) (int64, error) {
	var n int64
	if err := r.conn(tx).WithContext(ctx).Model(&domain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
