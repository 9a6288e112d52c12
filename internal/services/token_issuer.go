package services

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/config"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token has expired")
	ErrMalformedToken   = errors.New("malformed token")
	ErrForeignIssuer    = errors.New("token was issued by another service")
)

const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// TokenClaims is the payload of every token the service mints.
type TokenClaims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Identity is what a valid token proves about its bearer.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      models.Role
	TokenType string
	ExpiresAt time.Time
}

// TokenIssuer signs and validates JWTs. It holds no per-user state: whether a
// token has been revoked is a TokenStore question.
type TokenIssuer struct {
	method        jwt.SigningMethod
	signKey       any
	verifyKey     any
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewHMACTokenIssuer(secret []byte, issuer string, accessExpiry, refreshExpiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		method:        jwt.SigningMethodHS256,
		signKey:       secret,
		verifyKey:     secret,
		issuer:        issuer,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

func NewRSATokenIssuer(key *rsa.PrivateKey, issuer string, accessExpiry, refreshExpiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		method:        jwt.SigningMethodRS256,
		signKey:       key,
		verifyKey:     &key.PublicKey,
		issuer:        issuer,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

// NewTokenIssuerFromConfig picks the signing capability named by JWT_ALGORITHM.
func NewTokenIssuerFromConfig(cfg *config.Config) (*TokenIssuer, error) {
	switch cfg.JWTAlgorithm {
	case "", "HS256":
		return NewHMACTokenIssuer([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry), nil
	case "RS256":
		pemBytes, err := os.ReadFile(cfg.JWTPrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("read signing key: %w", err)
		}
		key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
		if err != nil {
			return nil, fmt.Errorf("parse signing key: %w", err)
		}
		return NewRSATokenIssuer(key, cfg.JWTIssuer, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry), nil
	}
	return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.JWTAlgorithm)
}

// WithClock replaces the time source used for iat/exp and validation.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// Algorithm returns the JWS alg header value, e.g. "HS256".
func (i *TokenIssuer) Algorithm() string { return i.method.Alg() }

// VerificationKey returns the key bearer middleware needs to check signatures.
func (i *TokenIssuer) VerificationKey() any { return i.verifyKey }

func (i *TokenIssuer) IssueAccessToken(user *models.User) (string, error) {
	return i.issue(user, TokenKindAccess, i.accessExpiry)
}

func (i *TokenIssuer) IssueRefreshToken(user *models.User) (string, error) {
	return i.issue(user, TokenKindRefresh, i.refreshExpiry)
}

func (i *TokenIssuer) issue(user *models.User, kind string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := TokenClaims{
		Email:     user.Email,
		Role:      string(user.Role),
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.signKey)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Validate checks signature and expiry only.
func (i *TokenIssuer) Validate(tokenString string) (*Identity, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return i.verifyKey, nil
	},
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(i.issuer),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrForeignIssuer
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrMalformedToken)
	}

	identity := &Identity{
		UserID:    userID,
		Email:     claims.Email,
		Role:      models.Role(claims.Role),
		TokenType: claims.TokenType,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}
