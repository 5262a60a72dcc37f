package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is resolved-or-updated by name: registrations and events reuse an
// existing row and overwrite its geographic fields with the supplied values.
type Location struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Address    string    `json:"address,omitempty"`
	Country    string    `json:"country,omitempty"`
	City       string    `json:"city,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (location *Location) BeforeCreate(tx *gorm.DB) (err error) {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	return
}
