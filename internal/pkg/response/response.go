package response

import (
	"time"

	"github.com/anietieasuquo/vending-machine/internal/core/domain"
	"github.com/gofiber/fiber/v2"
)

// Response represents a standard API success response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the structured error body returned for every failure.
// No stack traces or internal identifiers beyond the request path leak out.
type ErrorResponse struct {
	Message   string `json:"message"`
	Code      int    `json:"code"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// Success sends a 200 success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error maps a domain error to its HTTP status and sends the structured body.
func Error(c *fiber.Ctx, err error) error {
	code := domain.StatusCode(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		// Internal details never reach the client.
		message = "internal server error"
	}
	return c.Status(code).JSON(ErrorResponse{
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Path(),
	})
}

// Fail sends an error body with an explicit status code.
func Fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(ErrorResponse{
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Path(),
	})
}
