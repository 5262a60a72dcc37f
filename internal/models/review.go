package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is only creatable by users holding an attending RSVP for the event.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `json:"user,omitempty"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event     *Event    `json:"event,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (review *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return
}
