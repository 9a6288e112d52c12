package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/logging"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/repository"
)

// LogoutService revokes the single token presented on logout.
type LogoutService struct {
	tokens *repository.TokenStore
}

func NewLogoutService(tokens *repository.TokenStore) *LogoutService {
	return &LogoutService{tokens: tokens}
}

// Logout marks the token as expired and revoked. Empty, unknown and already
// revoked tokens are accepted without error.
func (s *LogoutService) Logout(ctx context.Context, presented string) error {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return nil
	}

	token, err := s.tokens.FindByValue(ctx, presented)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperr.System("failed to look up token", err)
	}
	if !token.Valid() {
		return nil
	}

	token.Expired = true
	token.Revoked = true
	if err := s.tokens.Save(ctx, token); err != nil {
		return apperr.System("failed to revoke token", err)
	}

	logging.FromContext(ctx).Info("token revoked on logout", "user_id", token.UserID.String())
	return nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Anything else yields "".
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
