package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventPublished, EventCancelled:
		return true
	}
	return false
}

// Event rows are soft-deleted only: IsDeleted hides them from active listings
// while historical RSVPs and transactions keep referencing them.
type Event struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	StartTime   time.Time      `gorm:"not null" json:"start_datetime"`
	EndTime     time.Time      `gorm:"not null" json:"end_datetime"`
	LocationID  uuid.UUID      `gorm:"type:uuid;not null" json:"location_id"`
	Location    *Location      `json:"location,omitempty"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid" json:"category_id,omitempty"`
	Category    *EventCategory `json:"category,omitempty"`
	Tags        []EventTag     `gorm:"many2many:event_tags_events;" json:"tags,omitempty"`
	CreatorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator     *User          `json:"creator,omitempty"`
	Capacity    int            `gorm:"not null" json:"capacity"`
	Price       float64        `gorm:"not null" json:"price"`
	MinimumAge  *int           `json:"minimum_age,omitempty"`
	Status      EventStatus    `gorm:"type:varchar(10);not null;default:'draft'" json:"status"`
	IsDeleted   bool           `gorm:"not null;default:false;index" json:"is_deleted"`
	Images      []EventImage   `json:"images,omitempty"`
	Tickets     []Ticket       `json:"tickets,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

func (event *Event) Duration() time.Duration {
	return event.EndTime.Sub(event.StartTime)
}

// EventImage carries the at-most-one-primary invariant per event; setting a
// new primary clears all prior primaries inside one transaction.
type EventImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Path      string    `gorm:"not null" json:"path"`
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

func (image *EventImage) BeforeCreate(tx *gorm.DB) (err error) {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return
}
