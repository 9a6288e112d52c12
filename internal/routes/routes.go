package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/repository"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	User   *handlers.UserHandler
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
}

// Setup registers every route. limiterStorage may be nil, in which case the
// rate limiters keep their counters in memory.
func Setup(
	app *fiber.App,
	h Handlers,
	issuer *services.TokenIssuer,
	tokens *repository.TokenStore,
	limiterStorage fiber.Storage,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(newLimiter("api", 60, limiterStorage))

	app.Get("/api/health", h.Health.Check)

	protected := []fiber.Handler{middleware.JWTProtected(issuer), middleware.RejectRevoked(tokens)}

	// Credential endpoints: 10 req/min per IP (stricter)
	user := app.Group("/user")
	credentialLimiter := newLimiter("credentials", 10, limiterStorage)
	user.Post("/signup", credentialLimiter, h.User.Signup)
	user.Post("/login", credentialLimiter, h.User.Login)
	user.Post("/logout", h.User.Logout)

	user.Get("/profile/:id", append(protected, h.User.Profile)...)
	user.Get("/address/list/:userId", append(protected, h.User.Addresses)...)

	app.Get("/auth/validate-jwt", h.Auth.ValidateJWT)
}

func newLimiter(scope string, max int, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return scope + ":" + c.IP() },
		Storage:           storage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.JSON(dto.ErrorResponse{
				Status:    dto.StatusError,
				Message:   "Too many requests",
				Code:      apperr.CodeException,
				RequestID: handlers.RequestID(c),
			})
		},
	})
}
