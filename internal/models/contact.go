package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact and Subscriber are open lead-capture records: anyone may create
// them, only organizers may read them back.
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Message   string    `gorm:"not null" json:"message"`
	SentAt    time.Time `gorm:"autoCreateTime" json:"sent_at"`
}

func (contact *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	return
}

type Subscriber struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `gorm:"autoCreateTime" json:"subscribed_at"`
}

func (subscriber *Subscriber) BeforeCreate(tx *gorm.DB) (err error) {
	if subscriber.ID == uuid.Nil {
		subscriber.ID = uuid.New()
	}
	return
}
