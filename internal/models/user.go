package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserDeleted  UserStatus = "deleted"
	UserPending  UserStatus = "pending"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive, UserDeleted, UserPending:
		return true
	}
	return false
}

// User is never hard-deleted; Status carries the lifecycle instead.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Role        Role           `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	Status      UserStatus     `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	Profile     map[string]any `gorm:"serializer:json" json:"profile,omitempty"`
	Preferences map[string]any `gorm:"serializer:json" json:"preferences,omitempty"`
	Interests   string         `json:"interests,omitempty"`
	LocationID  *uuid.UUID     `gorm:"type:uuid" json:"location_id,omitempty"`
	Location    *Location      `json:"location,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}

func (user *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plain)) == nil
}
