package middleware

import (
	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/logging"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/repository"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const jwtContextKey = "user"

// JWTProtected verifies the bearer token signature and expiry with the
// issuer's algorithm and key.
func JWTProtected(issuer *services.TokenIssuer) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: issuer.Algorithm(),
			Key:    issuer.VerificationKey(),
		},
		ContextKey: jwtContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c, "Unauthorized: invalid or expired token")
		},
	})
}

// RejectRevoked must run after JWTProtected. A token that verifies but is no
// longer the user's live token (revoked by logout or a newer login) is refused.
func RejectRevoked(tokens *repository.TokenStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals(jwtContextKey).(*jwt.Token)
		if !ok {
			return unauthorized(c, "Unauthorized: missing token")
		}

		active, err := tokens.IsActive(c.UserContext(), token.Raw)
		if err != nil {
			return handlers.Fail(c, apperr.System("failed to check token state", err))
		}
		if !active {
			return unauthorized(c, "Unauthorized: token has been revoked")
		}

		if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
			c.SetUserContext(logging.WithUserID(c.UserContext(), sub))
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.JSON(dto.ErrorResponse{
		Status:    dto.StatusError,
		Message:   message,
		Code:      apperr.CodeAuthorization,
		RequestID: handlers.RequestID(c),
	})
}
