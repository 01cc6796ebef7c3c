package models

import (
	"time"

	"github.com/google/uuid"
)

// User account statuses. Pending accounts exist but cannot log in
// until an admin approves them. Inactive is reserved and never set by
// any workflow.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Role is a row in the fixed roles table, seeded at migration time.
type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:200;not null" json:"-"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	Role         Role      `gorm:"foreignKey:RoleID" json:"role"`
	Status       string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
