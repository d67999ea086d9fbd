package health

import (
	healthsvc "stayhub-backend/internal/application/health"
	"stayhub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb            *redis.Client
	DB             healthsvc.DBPinger
	HealthAdminKey string
}

// Reset clears health stats in Redis. Requires query key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden)
	}
	if h.Rdb == nil {
		return response.Error(c, "Redis is not configured", fiber.StatusServiceUnavailable)
	}
	if err := healthsvc.Reset(c.UserContext(), h.Rdb); err != nil {
		return response.Error(c, err.Error(), fiber.StatusServiceUnavailable)
	}
	return response.Success(c, fiber.Map{"success": true, "message": "Stats reset successfully"})
}

// JSON returns dependency status, runtime and traffic counters.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	return response.Success(c, healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB))
}

// Errors returns the last failed requests, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return response.Success(c, []interface{}{})
	}
	entries, err := healthsvc.RecentErrors(c.UserContext(), h.Rdb)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusServiceUnavailable)
	}
	return response.Success(c, entries)
}

func (h *Handlers) Register(r fiber.Router) {
	r.Get("/health/json", h.JSON)
	r.Get("/health/errors", h.Errors)
	r.Get("/health/reset", h.Reset)
}
