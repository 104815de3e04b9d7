package api

import (
	"github.com/gofiber/fiber/v3"

	"leximap/internal/models"
)

// Client-facing error messages. Internal detail is never exposed.
const (
	MsgMissingWord = "Missing word"
	MsgInvalidWord = "Invalid word encoding"
	MsgServerError = "Server error"
)

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}

// ErrorHandler renders errors that escape handlers or middleware as JSON.
// Only *fiber.Error messages reach the client; anything else becomes a 500.
func ErrorHandler(c fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return jsonError(c, e.Code, e.Message)
	}
	return jsonError(c, fiber.StatusInternalServerError, MsgServerError)
}
