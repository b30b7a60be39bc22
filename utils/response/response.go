package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error payload every failing route returns: a generic
// message plus the underlying detail string when one exists.
type ErrorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON returns a 200 response with the given body.
func JSON(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created returns a 201 Created response with the stored record.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// Message returns a 200 response with a message body.
func Message(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

// Fail returns an error response carrying message and optional detail.
func Fail(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := ErrorBody{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	return c.Status(statusCode).JSON(body)
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string, err error) error {
	return Fail(c, fiber.StatusBadRequest, message, err)
}

// ValidationError returns a 400 response with a per-field breakdown.
func ValidationError(c *fiber.Ctx, message string, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{
		Message: message,
		Fields:  fields,
	})
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Fail(c, fiber.StatusNotFound, message, nil)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string, err error) error {
	if message == "" {
		message = "Internal server error"
	}
	return Fail(c, fiber.StatusInternalServerError, message, err)
}
