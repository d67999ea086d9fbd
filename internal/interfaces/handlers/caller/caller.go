package caller

import (
	"stayhub-backend/internal/application/identity"
	"stayhub-backend/internal/application/session"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Resolver turns the request's bearer credentials into a store session and a profile
// for one operation.
type Resolver struct {
	Bridge   *session.Bridge
	Identity *identity.Service
}

// Existing runs fn with the caller's profile. A caller without a profile gets domain.ErrProfileNotFound.
func (r *Resolver) Existing(c *fiber.Ctx, fn func(tx *gorm.DB, p *domain.Profile) error) error {
	return r.run(c, false, fn)
}

// Ensure runs fn with the caller's profile, creating it from the token claims on first use.
func (r *Resolver) Ensure(c *fiber.Ctx, fn func(tx *gorm.DB, p *domain.Profile) error) error {
	return r.run(c, true, fn)
}

// Scoped runs fn in the caller's store session without resolving a profile.
func (r *Resolver) Scoped(c *fiber.Ctx, fn func(tx *gorm.DB, creds *session.Credentials) error) error {
	creds, err := middleware.Credentials(c)
	if err != nil {
		return err
	}
	return r.Bridge.Scope(c.UserContext(), creds, func(tx *gorm.DB) error {
		return fn(tx, creds)
	})
}

func (r *Resolver) run(c *fiber.Ctx, create bool, fn func(tx *gorm.DB, p *domain.Profile) error) error {
	ctx := c.UserContext()
	return r.Scoped(c, func(tx *gorm.DB, creds *session.Credentials) error {
		var (
			p   *domain.Profile
			err error
		)
		if create {
			p, err = r.Identity.ResolveOrCreate(ctx, tx, creds)
		} else {
			p, err = r.Identity.Find(ctx, tx, creds.Subject)
		}
		if err != nil {
			return err
		}
		return fn(tx, p)
	})
}
