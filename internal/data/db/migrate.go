package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/skillgraph-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Notification inbox
		&domain.Notification{},
	)
}

// EnsureNotificationIndexes adds Postgres-only indexes the model tags cannot express.
func EnsureNotificationIndexes(db *gorm.DB) error {
	// Unread counters.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_notification_recipient_unread
		ON notification (recipient_id)
		WHERE is_read = false;
	`).Error; err != nil {
		return fmt.Errorf("create idx_notification_recipient_unread: %w", err)
	}
	return nil
}
