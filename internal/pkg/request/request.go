package request

import (
	"encoding/json"
	"strconv"
	"strings"

	"stayhub-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// ErrInvalidBody is returned for a missing or malformed JSON body.
var ErrInvalidBody = domain.NewValidationError("Invalid request body")

// JSON decodes the request body into v regardless of Content-Type.
func JSON(c *fiber.Ctx, v interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return ErrInvalidBody
	}
	if err := json.Unmarshal(body, v); err != nil {
		return ErrInvalidBody
	}
	return nil
}

// Int64Query reads an optional integer query parameter. Absent or blank gives nil.
func Int64Query(c *fiber.Ctx, key string) (*int64, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &domain.ValidationError{Message: "Invalid query", Fields: map[string]string{key: "must be an integer"}}
	}
	return &n, nil
}
