package handlers

import (
	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/logging"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	authService   *services.AuthService
	logoutService *services.LogoutService
}

func NewUserHandler(authService *services.AuthService, logoutService *services.LogoutService) *UserHandler {
	return &UserHandler{authService: authService, logoutService: logoutService}
}

func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, apperr.AsBusiness(apperr.Validation("Invalid request body", nil)))
	}

	resp, err := h.authService.Signup(c.UserContext(), &req)
	if err != nil {
		return Fail(c, err)
	}
	return success(c, "", resp)
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, apperr.AsBusiness(apperr.Validation("Invalid request body", nil)))
	}

	resp, err := h.authService.SignIn(c.UserContext(), &req)
	if err != nil {
		return Fail(c, err)
	}
	return success(c, "", resp)
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return Fail(c, err)
	}

	logging.FromContext(c.UserContext()).Info("getting user profile", "profile_id", id.String())
	user, err := h.authService.GetProfile(c.UserContext(), id)
	if err != nil {
		return Fail(c, err)
	}
	return success(c, "", user)
}

func (h *UserHandler) Addresses(c *fiber.Ctx) error {
	id, err := pathUUID(c, "userId")
	if err != nil {
		return Fail(c, err)
	}

	addrs, err := h.authService.GetAddresses(c.UserContext(), id)
	if err != nil {
		return Fail(c, err)
	}
	return success(c, "", addrs)
}

// Logout revokes whatever bearer token the request carries. It answers
// SUCCESS even when there was nothing to revoke.
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	token := services.BearerToken(c.Get(fiber.HeaderAuthorization))
	if err := h.logoutService.Logout(c.UserContext(), token); err != nil {
		return Fail(c, err)
	}
	return success[any](c, "Logged out successfully", nil)
}

func pathUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, apperr.AsBusiness(apperr.Validation("Invalid user id", map[string]string{
			param: "must be a valid UUID",
		}))
	}
	return id, nil
}
