package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationReminder NotificationType = "reminder"
	NotificationMessage  NotificationType = "message"
	NotificationUpdate   NotificationType = "update"
)

type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(10);not null" json:"type"`
	Content   string           `gorm:"not null" json:"content"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (notification *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	return
}
