package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SenderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"sender_id"`
	Sender     *User      `json:"sender,omitempty"`
	ReceiverID uuid.UUID  `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Receiver   *User      `json:"receiver,omitempty"`
	EventID    *uuid.UUID `gorm:"type:uuid" json:"event_id,omitempty"`
	Content    string     `gorm:"not null" json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (message *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return
}
