package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/logging"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/models"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/repository"
	"github.com/google/uuid"
)

// AddressLister fetches a user's addresses from wherever they are owned.
type AddressLister interface {
	GetAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
}

type AuthService struct {
	stores    *repository.Stores
	hasher    *PasswordHasher
	auth      Authenticator
	issuer    *TokenIssuer
	addresses AddressLister
	now       func() time.Time
}

func NewAuthService(
	stores *repository.Stores,
	hasher *PasswordHasher,
	auth Authenticator,
	issuer *TokenIssuer,
	addresses AddressLister,
) *AuthService {
	return &AuthService{
		stores:    stores,
		hasher:    hasher,
		auth:      auth,
		issuer:    issuer,
		addresses: addresses,
		now:       time.Now,
	}
}

// Signup creates the credentials and the user in one transaction, then
// issues a token pair. Every failure is returned as a business error.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	log := logging.FromContext(ctx).With("action", "signup")

	req.Email = normalizeEmail(req.Email)
	if err := dto.Validate(req); err != nil {
		return nil, apperr.AsBusiness(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.Business("failed to hash password", err)
	}

	user := &models.User{
		ID:        uuid.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Role:      models.RoleUser,
		Status:    models.StatusPending,
		CreatedAt: s.now().UTC(),
	}

	var resp *dto.AuthResponse
	err = s.stores.Transaction(ctx, func(tx *repository.Stores) error {
		if _, err := tx.Credentials.FindByEmail(ctx, user.Email); err == nil {
			return repository.ErrDuplicateKey
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if _, err := tx.Credentials.Save(ctx, user.Email, hash); err != nil {
			return err
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		var err error
		resp, err = s.startSession(ctx, tx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			log.Info("signup rejected, email taken", "email", user.Email)
			return nil, apperr.Business("email already registered", err)
		}
		log.Error("signup failed", "email", user.Email, "error", err)
		return nil, apperr.AsBusiness(err)
	}

	log.Info("user signed up", "user_id", user.ID.String())
	return resp, nil
}

// SignIn verifies the credentials and replaces any active session of the
// user with a new token pair. Authentication failures leave as business
// errors whose Origin is still KindAuthentication.
func (s *AuthService) SignIn(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	log := logging.FromContext(ctx).With("action", "signin")

	req.Email = normalizeEmail(req.Email)
	if err := dto.Validate(req); err != nil {
		return nil, apperr.AsBusiness(err)
	}

	if _, err := s.auth.Authenticate(ctx, req.Email, req.Password); err != nil {
		log.Info("sign-in rejected", "email", req.Email, "error", err)
		return nil, apperr.AsBusiness(err)
	}

	user, err := s.stores.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Credentials without a profile row: refuse rather than mint a token for nobody.
			log.Warn("credentials exist without user record", "email", req.Email)
			return nil, apperr.AsBusiness(apperr.Authentication(msgAccountMissing))
		}
		return nil, apperr.Business("failed to load user", err)
	}

	var resp *dto.AuthResponse
	err = s.stores.Transaction(ctx, func(tx *repository.Stores) error {
		var err error
		resp, err = s.startSession(ctx, tx, user)
		return err
	})
	if err != nil {
		log.Error("sign-in failed", "user_id", user.ID.String(), "error", err)
		return nil, apperr.AsBusiness(err)
	}

	log.Info("user signed in", "user_id", user.ID.String())
	return resp, nil
}

// startSession mints a token pair, revokes every token the user still holds
// and stores the new access token as the only valid one.
func (s *AuthService) startSession(ctx context.Context, tx *repository.Stores, user *models.User) (*dto.AuthResponse, error) {
	access, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	revoked, err := tx.Tokens.RevokeAll(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if revoked > 0 {
		logging.FromContext(ctx).Debug("revoked previous tokens", "user_id", user.ID.String(), "count", revoked)
	}

	if err := tx.Tokens.Save(ctx, &models.Token{
		UserID:    user.ID,
		Value:     access,
		TokenType: models.TokenTypeBearer,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.stores.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logging.FromContext(ctx).Info("user not found", "user_id", userID.String())
			return nil, apperr.AsBusiness(apperr.NotFound(fmt.Sprintf("User not found for given user Id : %s", userID)))
		}
		logging.FromContext(ctx).Error("profile lookup failed", "user_id", userID.String(), "error", err)
		return nil, apperr.Business(err.Error(), err)
	}
	return user, nil
}

func (s *AuthService) GetAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	addrs, err := s.addresses.GetAddresses(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Warn("address lookup failed", "user_id", userID.String(), "error", err)
		return nil, apperr.Business(err.Error(), err)
	}
	return addrs, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
