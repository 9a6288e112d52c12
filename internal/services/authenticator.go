package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/models"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/repository"
)

const msgAccountMissing = "Account does not exist. Please Signup"

// Authenticator verifies an email/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.Credentials, error)
}

// CredentialAuthenticator checks passwords against the credential store.
type CredentialAuthenticator struct {
	creds  *repository.CredentialStore
	hasher *PasswordHasher
}

func NewCredentialAuthenticator(creds *repository.CredentialStore, hasher *PasswordHasher) *CredentialAuthenticator {
	return &CredentialAuthenticator{creds: creds, hasher: hasher}
}

// Authenticate fails with an authentication error for unknown emails and
// wrong passwords alike, so callers cannot probe which accounts exist.
func (a *CredentialAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.Credentials, error) {
	creds, err := a.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Authentication(msgAccountMissing)
		}
		return nil, apperr.System("credential lookup failed", err)
	}
	if !a.hasher.Verify(password, creds.PasswordHash) {
		return nil, apperr.Authentication(msgAccountMissing)
	}
	return creds, nil
}
