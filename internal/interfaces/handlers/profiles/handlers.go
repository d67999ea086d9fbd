package profiles

import (
	"stayhub-backend/internal/application/identity"
	"stayhub-backend/internal/application/session"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/interfaces/handlers/caller"
	"stayhub-backend/internal/pkg/request"
	"stayhub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handlers struct {
	Service *identity.Service
	Caller  *caller.Resolver
}

// GET /profiles/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	var out *domain.Profile
	err := h.Caller.Existing(c, func(_ *gorm.DB, p *domain.Profile) error {
		out = p
		return nil
	})
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, out)
}

// PUT /profiles/me: sync email, name and avatar from the token claims
func (h *Handlers) Sync(c *fiber.Ctx) error {
	var out *domain.Profile
	err := h.Caller.Scoped(c, func(tx *gorm.DB, creds *session.Credentials) error {
		var err error
		out, err = h.Service.Upsert(c.UserContext(), tx, creds)
		return err
	})
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, out)
}

// PATCH /profiles/me {full_name?, phone?, avatar_url?, is_host?}
func (h *Handlers) Update(c *fiber.Ctx) error {
	var in identity.ProfileUpdate
	if err := request.JSON(c, &in); err != nil {
		return response.BadRequest(c, err)
	}
	var out *domain.Profile
	err := h.Caller.Ensure(c, func(tx *gorm.DB, p *domain.Profile) error {
		var err error
		out, err = h.Service.Update(c.UserContext(), tx, p.ID, in)
		return err
	})
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, out)
}

func (h *Handlers) Register(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/profiles")
	g.Get("/me", auth, h.Me)
	g.Put("/me", auth, h.Sync)
	g.Patch("/me", auth, h.Update)
}
