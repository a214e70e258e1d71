package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/skillgraph-backend/internal/domain"
)

func SeedNotification(tb testing.TB, ctx context.Context, tx *gorm.DB, recipientID, message string, createdAt time.Time) *domain.Notification {
	tb.Helper()
	n := &domain.Notification{
		RecipientID: recipientID,
		Message:     message,
		Type:        domain.NotificationApplicationStatus,
		CreatedAt:   createdAt,
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed notification: %v", err)
	}
	return n
}
