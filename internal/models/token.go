package models

import (
	"time"

	"github.com/google/uuid"
)

const TokenTypeBearer = "BEARER"

// Token is an issued access token. Rows are never deleted; logout and newer
// logins flip Expired and Revoked instead.
type Token struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Value     string    `gorm:"type:text;not null;uniqueIndex" json:"-"`
	TokenType string    `gorm:"size:20;not null;default:'BEARER'" json:"tokenType"`
	Expired   bool      `gorm:"not null;default:false" json:"expired"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Valid reports whether the token still counts as the user's active session.
func (t Token) Valid() bool {
	return !t.Expired && !t.Revoked
}
