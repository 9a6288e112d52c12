// Package repository persists credentials, users and issued tokens with GORM.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Stores groups the three stores bound to the same connection or transaction.
type Stores struct {
	db          *gorm.DB
	Credentials *CredentialStore
	Users       *UserStore
	Tokens      *TokenStore
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		db:          db,
		Credentials: NewCredentialStore(db),
		Users:       NewUserStore(db),
		Tokens:      NewTokenStore(db),
	}
}

// Transaction runs fn with stores bound to a single transaction. Returning an
// error from fn rolls every write back.
func (s *Stores) Transaction(ctx context.Context, fn func(tx *Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	}
	return err
}
