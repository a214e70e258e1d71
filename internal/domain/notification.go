package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationApplicationReceived = "application_received"
	NotificationApplicationStatus   = "application_status"
	NotificationShortlisted         = "shortlisted"
)

// Notification is addressed to exactly one recipient and is only mutated by
// that recipient marking it read.
type Notification struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID string         `gorm:"column:recipient_id;not null;index:idx_notification_recipient_created,priority:1" json:"recipient_id"`
	Message     string         `gorm:"column:message;type:text;not null" json:"message"`
	Type        string         `gorm:"column:type;not null;index" json:"type"`
	IsRead      bool           `gorm:"column:is_read;not null;default:false;index" json:"is_read"`
	TriggerID   string         `gorm:"column:trigger_id" json:"trigger_id,omitempty"`
	TriggerRole string         `gorm:"column:trigger_role" json:"trigger_role,omitempty"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;index:idx_notification_recipient_created,priority:2" json:"created_at"`
	ReadAt      *time.Time     `gorm:"column:read_at" json:"read_at,omitempty"`
}

func (Notification) TableName() string { return "notification" }

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
