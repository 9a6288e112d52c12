package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/user-service/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/user-service/internal/dto"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

const msgUnexpected = "Something went wrong. Please try again later"

// RequestID returns the correlation id set by the requestid middleware, or
// the inbound header when the middleware did not run.
func RequestID(c *fiber.Ctx) string {
	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}

func success[T any](c *fiber.Ctx, message string, data T) error {
	return c.JSON(dto.APIResponse[T]{
		Status:    dto.StatusSuccess,
		Message:   message,
		Code:      apperr.CodeSuccess,
		RequestID: RequestID(c),
		Data:      data,
	})
}

// Fail writes err as an ERROR envelope. The HTTP status is always 200.
func Fail(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponse{
		Status:    dto.StatusError,
		Message:   msgUnexpected,
		Code:      apperr.CodeOf(err),
		RequestID: RequestID(c),
	}

	if ae, ok := asAppErr(err); ok {
		resp.Message = ae.Message
		resp.Data = ae.Fields
		if ae.Origin == apperr.KindSystem {
			report(c, err)
		}
	} else {
		report(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ErrorHandler is the boundary for anything a handler did not turn into an
// envelope itself: panics caught by recover, routing errors, body limits.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if ae, ok := asAppErr(err); ok {
		return Fail(c, ae)
	}

	msg := msgUnexpected
	if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
		msg = fe.Message
	} else {
		slog.Error("unhandled server error",
			"request_id", RequestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		report(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.ErrorResponse{
		Status:    dto.StatusError,
		Message:   msg,
		Code:      apperr.CodeException,
		RequestID: RequestID(c),
	})
}

func asAppErr(err error) (*apperr.Error, bool) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func report(c *fiber.Ctx, err error) {
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("request_id", RequestID(c))
			hub.CaptureException(err)
		})
	}
}
