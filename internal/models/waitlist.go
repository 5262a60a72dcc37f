package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Waitlist holds at most one row per (event, user) pair. Notified is flipped
// by an external dispatcher when inventory frees up; only the flag lives here.
type Waitlist struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EventID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_waitlists_event_user" json:"event_id"`
	Event      *Event     `json:"event,omitempty"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_waitlists_event_user" json:"user_id"`
	User       *User      `json:"user,omitempty"`
	JoinedAt   time.Time  `gorm:"not null" json:"joined_at"`
	Notified   bool       `gorm:"not null;default:false" json:"notified"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
}

func (entry *Waitlist) BeforeCreate(tx *gorm.DB) (err error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return
}
