package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// FindAllValid returns the user's tokens that are neither expired nor revoked,
// oldest first.
func (s *TokenStore) FindAllValid(ctx context.Context, userID uuid.UUID) ([]models.Token, error) {
	var tokens []models.Token
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expired = ? AND revoked = ?", userID, false, false).
		Order("created_at ASC").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("find valid tokens: %w", err)
	}
	return tokens, nil
}

func (s *TokenStore) FindByValue(ctx context.Context, value string) (*models.Token, error) {
	var token models.Token
	if err := s.db.WithContext(ctx).Where("value = ?", value).First(&token).Error; err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

// IsActive reports whether value belongs to a stored token that has not been
// expired or revoked. Unknown values are inactive.
func (s *TokenStore) IsActive(ctx context.Context, value string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Token{}).
		Where("value = ? AND expired = ? AND revoked = ?", value, false, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return count > 0, nil
}

func (s *TokenStore) Save(ctx context.Context, token *models.Token) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
		if token.CreatedAt.IsZero() {
			token.CreatedAt = time.Now().UTC()
		}
		if token.TokenType == "" {
			token.TokenType = models.TokenTypeBearer
		}
		if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
			return fmt.Errorf("save token: %w", translate(err))
		}
		return nil
	}
	if err := s.db.WithContext(ctx).Save(token).Error; err != nil {
		return fmt.Errorf("save token: %w", translate(err))
	}
	return nil
}

func (s *TokenStore) SaveAll(ctx context.Context, tokens []models.Token) error {
	for i := range tokens {
		if err := s.Save(ctx, &tokens[i]); err != nil {
			return err
		}
	}
	return nil
}

// RevokeAll marks every valid token of the user as expired and revoked and
// returns how many were changed. A user without valid tokens yields 0, nil.
func (s *TokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) (int, error) {
	tokens, err := s.FindAllValid(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, nil
	}
	for i := range tokens {
		tokens[i].Expired = true
		tokens[i].Revoked = true
	}
	if err := s.SaveAll(ctx, tokens); err != nil {
		return 0, fmt.Errorf("revoke tokens: %w", err)
	}
	return len(tokens), nil
}
