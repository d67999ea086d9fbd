package listings

import (
	"strings"
	"time"

	"stayhub-backend/internal/application/listings"
	"stayhub-backend/internal/application/pricing"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/interfaces/handlers/caller"
	"stayhub-backend/internal/pkg/request"
	"stayhub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handlers struct {
	Service *listings.Service
	Caller  *caller.Resolver
}

// GET /listings?city=&minPrice=&maxPrice=&guests=&type=&q=: active listings, newest first
func (h *Handlers) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return response.BadRequest(c, err)
	}
	rows, err := h.Service.ListActive(c.UserContext(), f)
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, rows)
}

func parseFilter(c *fiber.Ctx) (listings.Filter, error) {
	f := listings.Filter{
		City:  strings.TrimSpace(c.Query("city")),
		Type:  strings.ToLower(strings.TrimSpace(c.Query("type"))),
		Query: strings.TrimSpace(c.Query("q")),
	}
	var err error
	if f.MinPrice, err = request.Int64Query(c, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = request.Int64Query(c, "maxPrice"); err != nil {
		return f, err
	}
	guests, err := request.Int64Query(c, "guests")
	if err != nil {
		return f, err
	}
	if guests != nil {
		n := int(*guests)
		f.Guests = &n
	}
	return f, nil
}

// GET /listings/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := listings.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err)
	}
	detail, err := h.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, detail)
}

// GET /listings/:id/quote?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD
func (h *Handlers) Quote(c *fiber.Ctx) error {
	id, err := listings.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err)
	}
	checkIn, err := optionalDate(c, "check_in")
	if err != nil {
		return response.BadRequest(c, err)
	}
	checkOut, err := optionalDate(c, "check_out")
	if err != nil {
		return response.BadRequest(c, err)
	}
	detail, err := h.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, pricing.PriceForStay(detail.PricePerNight, checkIn, checkOut))
}

func optionalDate(c *fiber.Ctx, key string) (*time.Time, error) {
	s := c.Query(key)
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, &domain.ValidationError{Message: "Invalid query", Fields: map[string]string{key: err.Error()}}
	}
	t := d.Time()
	return &t, nil
}

// POST /listings: the caller becomes the host; their profile is created on first use.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in listings.CreateListingInput
	if err := request.JSON(c, &in); err != nil {
		return response.BadRequest(c, err)
	}
	var created *domain.Listing
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

// GET /listings/mine: the caller's listings, active or not
func (h *Handlers) Mine(c *fiber.Ctx) error {
	var rows []listings.Summary
	err := h.Caller.Existing(c, func(tx *gorm.DB, p *domain.Profile) error {
		var err error
		rows, err = h.Service.ListForHost(c.UserContext(), tx, p.ID)
		return err
	})
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, rows)
}

type activeBody struct {
	IsActive *bool `json:"is_active"`
}

// PATCH /listings/:id/active {"is_active": bool}
func (h *Handlers) SetActive(c *fiber.Ctx) error {
	id, err := listings.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err)
	}
	var body activeBody
	if err := request.JSON(c, &body); err != nil {
		return response.BadRequest(c, err)
	}
	if body.IsActive == nil {
		return response.BadRequest(c, &domain.ValidationError{Message: "Invalid request body", Fields: map[string]string{"is_active": "is required"}})
	}
	var updated *domain.Listing
	err = h.Caller.Existing(c, func(tx *gorm.DB, p *domain.Profile) error {
		var err error
		updated, err = h.Service.SetActive(c.UserContext(), tx, p.ID, id, *body.IsActive)
		return err
	})
	if err != nil {
		return response.BadRequest(c, err)
	}
	return response.Success(c, updated)
}

// Register mounts the listing routes on r. /mine is registered ahead of /:id.
func (h *Handlers) Register(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/listings")
	g.Get("/", h.List)
	g.Get("/mine", auth, h.Mine)
	g.Get("/:id", h.Get)
	g.Get("/:id/quote", h.Quote)
	g.Post("/", auth, h.Create)
	g.Patch("/:id/active", auth, h.SetActive)
}
