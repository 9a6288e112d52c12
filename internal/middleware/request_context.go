package middleware

import (
	"github.com/ahmetcoskunkizilkaya/user-service/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// RequestContext copies the request id into the user context so services and
// outbound clients log and forward it. Register it after requestid.New().
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := handlers.RequestID(c); id != "" {
			c.SetUserContext(logging.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}
