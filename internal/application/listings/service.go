package listings

import (
	"context"
	"errors"
	"strings"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Filter narrows ListActive. Zero values impose no constraint; supplied fields are ANDed.
type Filter struct {
	City     string
	MinPrice *int64
	MaxPrice *int64
	Guests   *int
	Type     string
	// Query matches title, city or state (case-insensitive substring).
	Query string
}

func (s *Service) db(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.DB.WithContext(ctx)
}

func withHostCard(db *gorm.DB) *gorm.DB {
	return db.Select("id", "full_name", "avatar_url")
}

func withRatings(db *gorm.DB) *gorm.DB {
	return db.Select("id", "listing_id", "rating")
}

// ListActive returns active listings matching f, newest first, with host card and ratings.
func (s *Service) ListActive(ctx context.Context, f Filter) ([]Summary, error) {
	q := s.DB.WithContext(ctx).
		Preload("Host", withHostCard).
		Preload("Reviews", withRatings).
		Where("is_active = ?", true)

	if city := strings.TrimSpace(f.City); city != "" {
		q = q.Where("LOWER(city) LIKE ? ESCAPE '\\'", likePattern(city))
	}
	if f.MinPrice != nil {
		q = q.Where("price_per_night >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_per_night <= ?", *f.MaxPrice)
	}
	if f.Guests != nil {
		q = q.Where("guests >= ?", *f.Guests)
	}
	if t := strings.TrimSpace(f.Type); t != "" {
		q = q.Where("type = ?", t)
	}
	if text := strings.TrimSpace(f.Query); text != "" {
		p := likePattern(text)
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(city) LIKE ? ESCAPE '\\' OR LOWER(state) LIKE ? ESCAPE '\\')", p, p, p)
	}

	var rows []domain.Listing
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return summaries(rows), nil
}

// GetByID returns an active listing with host contact and full reviews.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Detail, error) {
	if id == uuid.Nil {
		return nil, domain.ErrListingNotFound
	}
	var l domain.Listing
	err := s.DB.WithContext(ctx).
		Preload("Host", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name", "avatar_url", "phone")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Reviewer", withHostCard).
		Where("id = ? AND is_active = ?", id, true).
		First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return toDetail(l), nil
}

// CreateListingInput is the host-supplied part of a listing; host_id always comes from the resolved profile.
type CreateListingInput struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Description   string   `json:"description"`
	Type          string   `json:"type" validate:"required,listing_type"`
	PricePerNight int64    `json:"price_per_night" validate:"gt=0"`
	Guests        int      `json:"guests" validate:"gte=0"`
	Bedrooms      int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int      `json:"bathrooms" validate:"gte=0"`
	Address       string   `json:"address" validate:"required"`
	City          string   `json:"city" validate:"required"`
	State         string   `json:"state" validate:"required"`
	Country       string   `json:"country" validate:"required"`
	PostalCode    string   `json:"postal_code"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images" validate:"dive,required"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// Create inserts a listing owned by hostID. The caller resolves the host profile first.
func (s *Service) Create(ctx context.Context, tx *gorm.DB, hostID uuid.UUID, in CreateListingInput) (*domain.Listing, error) {
	if hostID == uuid.Nil {
		return nil, domain.ErrProfileNotFound
	}
	if err := validation.Struct("Invalid listing", in); err != nil {
		return nil, err
	}
	l := &domain.Listing{
		HostID:        hostID,
		Title:         strings.TrimSpace(in.Title),
		Type:          strings.ToLower(strings.TrimSpace(in.Type)),
		PricePerNight: in.PricePerNight,
		Guests:        in.Guests,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		Address:       strings.TrimSpace(in.Address),
		City:          strings.TrimSpace(in.City),
		State:         strings.TrimSpace(in.State),
		Country:       strings.TrimSpace(in.Country),
		Amenities:     datatypes.JSONSlice[string](nonNil(in.Amenities)),
		Images:        datatypes.JSONSlice[string](nonNil(in.Images)),
		IsActive:      true,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		l.Description = &d
	}
	if pc := strings.TrimSpace(in.PostalCode); pc != "" {
		l.PostalCode = &pc
	}
	if err := s.db(ctx, tx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// ListForHost returns every listing owned by hostID, active or not, newest first.
func (s *Service) ListForHost(ctx context.Context, tx *gorm.DB, hostID uuid.UUID) ([]Summary, error) {
	var rows []domain.Listing
	err := s.db(ctx, tx).
		Preload("Host", withHostCard).
		Preload("Reviews", withRatings).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return summaries(rows), nil
}

// SetActive soft-(de)activates a listing owned by hostID.
func (s *Service) SetActive(ctx context.Context, tx *gorm.DB, hostID, listingID uuid.UUID, active bool) (*domain.Listing, error) {
	db := s.db(ctx, tx)
	var l domain.Listing
	if err := db.Where("id = ?", listingID).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	if l.HostID != hostID {
		return nil, domain.ErrForbidden
	}
	if err := db.Model(&l).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	l.IsActive = active
	return &l, nil
}

func likePattern(s string) string {
	s = strings.ToLower(s)
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
