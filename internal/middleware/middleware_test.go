package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"stayhub-backend/internal/application/health"
	"stayhub-backend/internal/application/session"
	"stayhub-backend/internal/pkg/response"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(CORS())
	app.Use(Tracing())
	return app
}

func readError(t *testing.T, body io.Reader) string {
	t.Helper()
	var out response.ErrorBody
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out.Error
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	app := newApp()
	app.Post("/bookings", func(c *fiber.Ctx) error {
		return c.SendString("handler")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodOptions, "/bookings", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, AllowedHeaders, resp.Header.Get("Access-Control-Allow-Headers"))

	// Unknown paths are answered too.
	resp, err = app.Test(httptest.NewRequest(fiber.MethodOptions, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := newApp()
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("store unavailable") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "store unavailable", readError(t, resp.Body))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Not Found", string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestTracing(t *testing.T) {
	app := newApp()
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetTraceID(c)) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	generated := resp.Header.Get("X-Trace-Id")
	_, err = uuid.Parse(generated)
	assert.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, generated, string(body))

	incoming := uuid.NewString()
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Trace-Id", incoming)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, incoming, resp.Header.Get("X-Trace-Id"))

	req = httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Trace-Id", "not a uuid")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, "not a uuid", resp.Header.Get("X-Trace-Id"))
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuth(t *testing.T) {
	app := newApp()
	app.Use(Authenticate(&session.Bridge{Secret: []byte(secret)}))
	app.Get("/public", func(c *fiber.Ctx) error {
		if _, err := Credentials(c); err != nil {
			return c.SendString("anonymous")
		}
		return c.SendString("signed-in")
	})
	app.Get("/private", RequireAuth(), func(c *fiber.Ctx) error {
		creds, _ := Credentials(c)
		return c.SendString(creds.Subject)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/public", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anonymous", string(body))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User must be signed in", readError(t, resp.Body))

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, jwt.MapClaims{"sub": "user_42", "exp": time.Now().Add(time.Hour).Unix()}))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "user_42", string(body))
}

func TestHealthMarker(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	app := newApp()
	app.Use(HealthMarker(rdb))
	app.Get("/listings", func(c *fiber.Ctx) error { return response.Success(c, []string{}) })
	app.Post("/bookings", func(c *fiber.Ctx) error { return response.BadRequest(c, errors.New("User must be signed in")) })
	app.Get("/health/json", func(c *fiber.Ctx) error { return c.SendString("{}") })

	for _, r := range []struct{ method, path string }{
		{fiber.MethodGet, "/listings"},
		{fiber.MethodPost, "/bookings"},
		{fiber.MethodGet, "/health/json"},
	} {
		_, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		require.NoError(t, err)
	}

	total, _ := mr.Get(health.KeyReqTotal)
	failed, _ := mr.Get(health.KeyReqErrors)
	assert.Equal(t, "2", total)
	assert.Equal(t, "1", failed)

	entries, err := health.RecentErrors(context.Background(), rdb)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "User must be signed in", entries[0]["message"])
	assert.Equal(t, "/bookings", entries[0]["path"])
}

func TestHealthMarker_NilRedis(t *testing.T) {
	app := newApp()
	app.Use(HealthMarker(nil))
	app.Get("/listings", func(c *fiber.Ctx) error { return c.SendString("ok") })
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/listings", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
