package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/slicehub/pizza-service/internal/dto"
)

// ErrorHandler maps fiber status errors to the {message} contract body
// and hides internals behind a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Message: message})
}
