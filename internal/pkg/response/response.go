package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success sends 200 with data as the raw JSON body (array or object, no envelope).
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Error sends statusCode with {"error": message}.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

// BadRequest sends 400 with the error's message. Every failure surfaced by a handler goes through here.
func BadRequest(c *fiber.Ctx, err error) error {
	return Error(c, err.Error(), fiber.StatusBadRequest)
}

// NotFound sends the plain-text 404 used for unmatched paths and methods.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).SendString("Not Found")
}
