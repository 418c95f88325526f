package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// StatusCode maps an error chain onto the HTTP status the handlers answer with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrRPCFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrFetchFailed):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// Respond writes err as a JSON message, including the reason when one is attached.
func Respond(c *fiber.Ctx, err error) error {
	body := fiber.Map{"message": err.Error()}
	if reason := ReasonOf(err); reason != "" {
		body["reason"] = reason
	}
	return c.Status(StatusCode(err)).JSON(body)
}
