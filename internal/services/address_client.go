package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/logging"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrAddressUnavailable = errors.New("address service unavailable")
	ErrAddressRejected    = errors.New("address service rejected request")
	ErrAddressBadPayload  = errors.New("address service returned an unreadable payload")
)

// AddressClient calls the address service's list endpoint.
type AddressClient struct {
	baseURL string
	timeout time.Duration
}

func NewAddressClient(baseURL string, timeout time.Duration) *AddressClient {
	return &AddressClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// GetAddresses returns the user's addresses or one of the ErrAddress* errors.
// It never returns partial data alongside an error.
func (c *AddressClient) GetAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: %v", ErrAddressUnavailable, context.DeadlineExceeded)
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Get(c.baseURL + "/address/list/" + userID.String())
	agent.Timeout(timeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if rid := logging.RequestID(ctx); rid != "" {
		agent.Set(fiber.HeaderXRequestID, rid)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrAddressUnavailable, errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrAddressRejected, code)
	}

	var resp dto.APIResponse[[]models.Address]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressBadPayload, err)
	}
	if resp.Status != dto.StatusSuccess {
		return nil, fmt.Errorf("%w: %s %s", ErrAddressRejected, resp.Code, resp.Message)
	}
	if resp.Data == nil {
		return []models.Address{}, nil
	}
	return resp.Data, nil
}
