package dashboard

import (
	"stayhub-backend/internal/application/dashboard"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/interfaces/handlers/caller"
	"stayhub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handlers struct {
	Service *dashboard.Service
	Caller  *caller.Resolver
}

// GET /dashboard/host
func (h *Handlers) Host(c *fiber.Ctx) error {
	var out *dashboard.HostSummary
	err := h.Caller.Existing(c, func(tx *gorm.DB, p *domain.Profile) error {
		var err error
		out, err = h.Service.Summary(c.UserContext(), tx, p.ID)
		return err
	})
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, out)
}

func (h *Handlers) Register(r fiber.Router, auth fiber.Handler) {
	r.Get("/dashboard/host", auth, h.Host)
}
