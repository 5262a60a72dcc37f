package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RSVPStatus string

const (
	RSVPAttending RSVPStatus = "attending"
	RSVPMaybe     RSVPStatus = "maybe"
	RSVPDeclined  RSVPStatus = "declined"
)

func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPAttending, RSVPMaybe, RSVPDeclined:
		return true
	}
	return false
}

// RSVP holds at most one row per (user, event) pair; the composite unique
// index backs the duplicate check under concurrent inserts.
type RSVP struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_rsvps_user_event" json:"user_id"`
	User        *User      `json:"user,omitempty"`
	EventID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_rsvps_user_event" json:"event_id"`
	Event       *Event     `json:"event,omitempty"`
	TicketID    uuid.UUID  `gorm:"type:uuid;not null" json:"ticket_id"`
	Ticket      *Ticket    `json:"ticket,omitempty"`
	Quantity    int        `gorm:"not null;default:1" json:"quantity"`
	Status      RSVPStatus `gorm:"type:varchar(10);not null" json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CheckedIn   bool       `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (rsvp *RSVP) BeforeCreate(tx *gorm.DB) (err error) {
	if rsvp.ID == uuid.Nil {
		rsvp.ID = uuid.New()
	}
	return
}
