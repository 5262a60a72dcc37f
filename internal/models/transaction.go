package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction models payment as a status transition only; no gateway is
// involved. Created together with the RSVP inside the reservation transaction.
type Transaction struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID string            `gorm:"uniqueIndex;not null" json:"transaction_id"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User             `json:"user,omitempty"`
	TicketID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"ticket_id"`
	Ticket        *Ticket           `json:"ticket,omitempty"`
	Amount        float64           `gorm:"not null" json:"amount"`
	PaymentMethod string            `gorm:"not null" json:"payment_method"`
	Status        TransactionStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (txn *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.New().String()
	}
	return
}
