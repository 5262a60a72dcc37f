package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (category *EventCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return
}

type EventTag struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Events    []Event   `gorm:"many2many:event_tags_events;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (tag *EventTag) BeforeCreate(tx *gorm.DB) (err error) {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	return
}
