package handlers

import (
	"errors"

	"building/internal/services"

	"github.com/gofiber/fiber/v2"
)

// writeError answers client-facing service errors with their message.
// Any other error is returned for the app's error handler to log as a 500.
func writeError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		return err
	}
	return c.Status(statusFor(svcErr.Kind)).JSON(fiber.Map{
		"message": svcErr.Message,
	})
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, services.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(kind, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		// Missing records are reported as bad requests, like validation failures.
		return fiber.StatusBadRequest
	}
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
