package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AllowedHeaders are the request headers browser clients send to the API.
const AllowedHeaders = "authorization, x-client-info, apikey, content-type"

// CORS allows any origin. Every response carries the CORS headers and
// preflight requests are answered with 200 "ok" before routing.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowHeaders, AllowedHeaders)
		if c.Method() == fiber.MethodOptions {
			return c.Status(fiber.StatusOK).SendString("ok")
		}
		return c.Next()
	}
}
