package request

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"stayhub-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var v struct {
			Title string `json:"title"`
		}
		if err := JSON(c, &v); err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return c.SendString(v.Title)
	})

	for body, want := range map[string]string{
		`{"title":"Loft"}`: "Loft",
		``:                 "Invalid request body",
		`{"title":`:        "Invalid request body",
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(body)))
		require.NoError(t, err)
		got, _ := io.ReadAll(resp.Body)
		assert.Equal(t, want, string(got), body)
	}
}

func TestInt64Query(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		n, err := Int64Query(c, "minPrice")
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.SendString("invalid")
		case n == nil:
			return c.SendString("absent")
		default:
			return c.JSON(*n)
		}
	})

	for query, want := range map[string]string{
		"":                "absent",
		"?minPrice=":      "absent",
		"?minPrice=5000":  "5000",
		"?minPrice=cheap": "invalid",
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+query, nil))
		require.NoError(t, err)
		got, _ := io.ReadAll(resp.Body)
		assert.Equal(t, want, string(got), query)
	}
}
