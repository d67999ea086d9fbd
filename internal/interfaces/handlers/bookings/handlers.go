package bookings

import (
	"context"

	"stayhub-backend/internal/application/bookings"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/interfaces/handlers/caller"
	"stayhub-backend/internal/pkg/request"
	"stayhub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Handlers struct {
	Service *bookings.Service
	Caller  *caller.Resolver
}

type lister func(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]bookings.View, error)

func (h *Handlers) list(c *fiber.Ctx, fn lister) error {
	var rows []bookings.View
	err := h.Caller.Existing(c, func(tx *gorm.DB, p *domain.Profile) error {
		var err error
		rows, err = fn(c.UserContext(), tx, p.ID)
		return err
	})
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, rows)
}

// GET /bookings: bookings the caller made or hosts
func (h *Handlers) List(c *fiber.Ctx) error {
	return h.list(c, h.Service.ListForProfile)
}

// GET /bookings/user
func (h *Handlers) ListUser(c *fiber.Ctx) error {
	return h.list(c, h.Service.ListForUser)
}

// GET /bookings/host
func (h *Handlers) ListHost(c *fiber.Ctx) error {
	return h.list(c, h.Service.ListForHost)
}

// POST /bookings: guest_id in the body is ignored; the caller is the guest.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in bookings.CreateBookingInput
	if err := request.JSON(c, &in); err != nil {
		return response.BadRequest(c, err)
	}
	var created *bookings.View
	err := h.Caller.Ensure(c, func(tx *gorm.DB, p *domain.Profile) error {
		var err error
		created, err = h.Service.Create(c.UserContext(), tx, p.ID, in)
		return err
	})
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, created)
}

func (h *Handlers) Register(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/bookings")
	g.Get("/", auth, h.List)
	g.Get("/user", auth, h.ListUser)
	g.Get("/host", auth, h.ListHost)
	g.Post("/", auth, h.Create)
}
