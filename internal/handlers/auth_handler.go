package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/logging"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/repository"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	issuer *services.TokenIssuer
	tokens *repository.TokenStore
}

func NewAuthHandler(issuer *services.TokenIssuer, tokens *repository.TokenStore) *AuthHandler {
	return &AuthHandler{issuer: issuer, tokens: tokens}
}

// ValidateJWT answers a bare JSON boolean: true for a live token, false for
// one that verifies but was revoked. Tokens that fail verification get an
// ERR_AUTHORIZATION envelope instead.
func (h *AuthHandler) ValidateJWT(c *fiber.Ctx) error {
	token := c.Query("token")
	log := logging.FromContext(c.UserContext())

	if token == "" {
		return Fail(c, apperr.AsBusiness(apperr.Validation("token is required", map[string]string{
			"token": "must not be blank",
		})))
	}

	if _, err := h.issuer.Validate(token); err != nil {
		log.Info("token rejected", "error", err)
		return c.JSON(dto.ErrorResponse{
			Status:    dto.StatusError,
			Message:   authorizationMessage(err),
			Code:      apperr.CodeAuthorization,
			RequestID: RequestID(c),
		})
	}

	active, err := h.tokens.IsActive(c.UserContext(), token)
	if err != nil {
		return Fail(c, apperr.System("failed to check token state", err))
	}
	return c.JSON(active)
}

func authorizationMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, services.ErrInvalidSignature):
		return "Invalid token signature"
	default:
		return "Invalid token"
	}
}
