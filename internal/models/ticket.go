package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is one sellable tier of an event. Remaining is only ever decremented
// through a guarded update inside the reservation transaction, so
// 0 <= Remaining <= Quantity holds at every observed state.
type Ticket struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tickets_event_name" json:"event_id"`
	Event     *Event    `json:"event,omitempty"`
	Name      string    `gorm:"not null;uniqueIndex:idx_tickets_event_name" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Remaining int       `gorm:"not null" json:"remaining"`
	SaleStart time.Time `gorm:"not null" json:"sale_start"`
	SaleEnd   time.Time `gorm:"not null" json:"sale_end"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}

// Available reports whether the tier can be reserved right now.
func (ticket *Ticket) Available(now time.Time) bool {
	return ticket.Remaining > 0 && ticket.OnSale(now)
}

// OnSale reports the active-flag and sale-window part of availability,
// independent of remaining inventory.
func (ticket *Ticket) OnSale(now time.Time) bool {
	return ticket.IsActive && !now.Before(ticket.SaleStart) && !now.After(ticket.SaleEnd)
}
