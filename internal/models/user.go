package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// StatusPending is the lifecycle status of an account that has not been verified yet.
const StatusPending = 0

// User is the profile record. Secrets live in Credentials, keyed by the same email.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Name      string    `gorm:"size:255" json:"name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Role      Role      `gorm:"size:20;not null;default:'USER'" json:"role"`
	Status    int       `gorm:"not null;default:0" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
