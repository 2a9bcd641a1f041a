package handlers

import (
	"errors"
	"log/slog"

	"vocabulary/internal/dto"
	"vocabulary/internal/pipeline"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a pipeline outcome to its HTTP status.
func StatusFor(kind pipeline.Kind) int {
	switch kind {
	case pipeline.Success:
		return fiber.StatusOK
	case pipeline.Created:
		return fiber.StatusCreated
	case pipeline.BadRequest:
		return fiber.StatusBadRequest
	case pipeline.Conflict:
		return fiber.StatusConflict
	case pipeline.NotFound:
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// respond writes res as an envelope. Internal failures are reported to the
// request's Sentry hub when error tracking is enabled.
func respond(c *fiber.Ctx, res pipeline.Result) error {
	if res.Kind == pipeline.Internal && res.Err != nil {
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(res.Err)
		}
	}
	return c.Status(StatusFor(res.Kind)).JSON(res.Envelope())
}

// ErrorHandler renders errors that escape the handlers (unknown routes,
// recovered panics, body limit) as an ERROR envelope. Details of 5xx errors
// are logged, not returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.Error(message))
}
