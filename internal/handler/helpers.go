package handler

import (
	"errors"

	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper to parse UUID path params
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// statusFor maps engine error kinds to HTTP statuses. Everything the engine
// returns is recoverable at the caller; nothing here is fatal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, service.ErrOverReturn):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func respondErr(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}
