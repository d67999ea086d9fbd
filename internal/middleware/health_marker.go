package middleware

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"stayhub-backend/internal/application/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// HealthMarker records request stats in Redis (skip /, /health*, favicon).
// Every non-2xx response counts as failed and is appended to the error log.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if rdb == nil || path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		ctx := c.UserContext()
		start := time.Now()
		lastReq, _ := json.Marshal(map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		})
		pipe := rdb.Pipeline()
		pipe.Set(ctx, health.KeyLastReq, lastReq, 0)
		pipe.Incr(ctx, health.KeyReqTotal)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Debug().Err(err).Msg("health counters unavailable")
			return c.Next()
		}

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The global error handler has not run yet; it answers 400 or 404.
			status = fiber.StatusBadRequest
			var fe *fiber.Error
			if errors.As(err, &fe) && (fe.Code == fiber.StatusNotFound || fe.Code == fiber.StatusMethodNotAllowed) {
				status = fiber.StatusNotFound
			}
		}
		pipe = rdb.Pipeline()
		pipe.Incr(ctx, health.KeyResCount)
		pipe.IncrByFloat(ctx, health.KeyResTime, float64(time.Since(start).Milliseconds()))
		if status >= fiber.StatusBadRequest {
			pipe.Incr(ctx, health.KeyReqErrors)
		}
		_, _ = pipe.Exec(ctx)

		if status >= fiber.StatusBadRequest {
			_ = health.LogError(ctx, rdb, map[string]interface{}{
				"time":     time.Now(),
				"path":     c.OriginalURL(),
				"method":   c.Method(),
				"status":   status,
				"message":  failureMessage(c, err),
				"trace_id": GetTraceID(c),
			})
		}
		return err
	}
}

func failureMessage(c *fiber.Ctx, err error) string {
	if err != nil {
		return err.Error()
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(c.Response().Body(), &body) == nil && body.Error != "" {
		return body.Error
	}
	return string(c.Response().Body())
}
