package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Save stores the verifier for email. It never overwrites an existing row.
func (s *CredentialStore) Save(ctx context.Context, email, verifier string) (*models.Credentials, error) {
	creds := &models.Credentials{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: verifier,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(creds).Error; err != nil {
		if err = translate(err); errors.Is(err, ErrDuplicateKey) {
			return nil, err
		}
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	return creds, nil
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*models.Credentials, error) {
	var creds models.Credentials
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&creds).Error; err != nil {
		return nil, translate(err)
	}
	return &creds, nil
}
