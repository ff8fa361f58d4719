package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

func ok(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func fail(c *fiber.Ctx, status int, message string, fields map[string][]string) error {
	return c.Status(status).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}

// respondError maps service errors onto the response envelope. Anything it
// does not recognise is a 500 whose detail stays in the logs.
func respondError(c *fiber.Ctx, err error) error {
	var (
		notFound   *services.NotFoundError
		validation *services.ValidationError
		state      *services.StateError
		fiberErr   *fiber.Error
	)
	switch {
	case errors.As(err, &fiberErr):
		return fail(c, fiberErr.Code, fiberErr.Message, nil)
	case errors.As(err, &notFound):
		return fail(c, fiber.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &validation):
		return fail(c, fiber.StatusBadRequest, validation.Message, validation.Fields)
	case errors.As(err, &state):
		return fail(c, fiber.StatusBadRequest, state.Message, nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "Bad credentials", nil)
	case errors.Is(err, services.ErrEmailTaken):
		return fail(c, fiber.StatusBadRequest, "Email is already registered", nil)
	}

	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", requestID(c),
		"error", err.Error(),
	)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("route", c.Route().Path)
			hub.CaptureException(err)
		})
	}
	return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// ErrorHandler renders errors that escape a handler, such as unmatched
// routes or recovered panics, in the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "request_id", requestID(c), "error", err.Error())
		message = "Internal server error"
	}
	return fail(c, code, message, nil)
}
