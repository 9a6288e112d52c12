package models

import (
	"time"

	"github.com/google/uuid"
)

type Credentials struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
