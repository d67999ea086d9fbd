package middleware

import (
	"stayhub-backend/internal/application/session"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	credentialsLocal = "credentials"
	authErrorLocal   = "auth_error"
)

// Authenticate exchanges the Authorization header for per-request credentials.
// It never rejects; handlers that need a caller use RequireAuth or Credentials.
func Authenticate(bridge *session.Bridge) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || bridge == nil {
			return c.Next()
		}
		creds, err := bridge.Exchange(c.UserContext(), header)
		if err != nil {
			c.Locals(authErrorLocal, err)
		} else {
			c.Locals(credentialsLocal, creds)
		}
		return c.Next()
	}
}

// RequireAuth rejects requests without verified credentials with 400 {"error": ...}.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := Credentials(c); err != nil {
			return response.BadRequest(c, err)
		}
		return c.Next()
	}
}

// Credentials returns the caller's verified credentials, or the reason there are none.
func Credentials(c *fiber.Ctx) (*session.Credentials, error) {
	if creds, ok := c.Locals(credentialsLocal).(*session.Credentials); ok && creds != nil {
		return creds, nil
	}
	if err, ok := c.Locals(authErrorLocal).(error); ok && err != nil {
		return nil, err
	}
	return nil, domain.ErrAuthRequired
}
