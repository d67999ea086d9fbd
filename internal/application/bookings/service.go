package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"stayhub-backend/internal/application/pricing"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service reads and creates bookings. Cache is optional; with a nil Cache every read goes to the store.
type Service struct {
	DB       *gorm.DB
	Cache    Cache
	CacheTTL time.Duration
}

// CreateBookingInput is the guest-supplied booking body. Any guest_id in the request is ignored.
type CreateBookingInput struct {
	ListingID  string `json:"listing_id" validate:"required"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	Guests     int    `json:"guests" validate:"gte=1"`
	TotalPrice int64  `json:"total_price" validate:"gte=0"`
}

func (s *Service) db(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.DB.WithContext(ctx)
}

func withGuestCard(db *gorm.DB) *gorm.DB {
	return db.Select("id", "full_name", "email")
}

// ListForUser returns bookings made by profileID, newest first.
func (s *Service) ListForUser(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]View, error) {
	return s.list(ctx, tx, ScopeGuest, profileID)
}

// ListForHost returns bookings on listings hosted by profileID, newest first.
func (s *Service) ListForHost(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]View, error) {
	return s.list(ctx, tx, ScopeHost, profileID)
}

// ListForProfile returns bookings where profileID is either the guest or the host.
func (s *Service) ListForProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]View, error) {
	return s.list(ctx, tx, ScopeAll, profileID)
}

func (s *Service) list(ctx context.Context, tx *gorm.DB, scope Scope, profileID uuid.UUID) ([]View, error) {
	key := cacheKey(scope, profileID)
	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	db := s.db(ctx, tx)
	hosted := db.Session(&gorm.Session{NewDB: true}).
		Model(&domain.Listing{}).Select("id").Where("host_id = ?", profileID)

	q := db.Preload("Listing").Preload("Guest", withGuestCard)
	switch scope {
	case ScopeGuest:
		q = q.Where("guest_id = ?", profileID)
	case ScopeHost:
		q = q.Where("listing_id IN (?)", hosted)
	default:
		q = q.Where("(guest_id = ? OR listing_id IN (?))", profileID, hosted)
	}

	var rows []domain.Booking
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	views := toViews(rows)
	s.store(ctx, key, views)
	return views, nil
}

// Create books a listing for guestID. Dates must be YYYY-MM-DD with check-out strictly after check-in,
// and the listing must exist and be active. Status is left to the store default (pending).
// A missing total_price is derived from the listing's nightly rate.
func (s *Service) Create(ctx context.Context, tx *gorm.DB, guestID uuid.UUID, in CreateBookingInput) (*View, error) {
	if guestID == uuid.Nil {
		return nil, domain.ErrProfileNotFound
	}
	if err := validation.Struct("Invalid booking", in); err != nil {
		return nil, err
	}
	listingID, err := uuid.Parse(in.ListingID)
	if err != nil {
		return nil, &domain.ValidationError{Message: "Invalid booking", Fields: map[string]string{"listing_id": "is invalid"}}
	}
	checkIn, err := domain.ParseDate(in.CheckIn)
	if err != nil {
		return nil, &domain.ValidationError{Message: "Invalid booking", Fields: map[string]string{"check_in": err.Error()}}
	}
	checkOut, err := domain.ParseDate(in.CheckOut)
	if err != nil {
		return nil, &domain.ValidationError{Message: "Invalid booking", Fields: map[string]string{"check_out": err.Error()}}
	}
	if !checkOut.Time().After(checkIn.Time()) {
		return nil, domain.NewValidationError("Check-out date must be after check-in date")
	}

	db := s.db(ctx, tx)
	var listing domain.Listing
	if err := db.Where("id = ? AND is_active = ?", listingID, true).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}

	total := in.TotalPrice
	if total == 0 {
		start, end := checkIn.Time(), checkOut.Time()
		total = pricing.PriceForStay(listing.PricePerNight, &start, &end).Total
	}

	b := &domain.Booking{
		ListingID:  listing.ID,
		GuestID:    guestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     in.Guests,
		TotalPrice: total,
	}
	if err := db.Create(b).Error; err != nil {
		return nil, err
	}

	var created domain.Booking
	if err := db.Preload("Listing").Preload("Guest", withGuestCard).Where("id = ?", b.ID).First(&created).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx, guestID, listing.HostID)
	v := toView(created)
	return &v, nil
}

func (s *Service) cached(ctx context.Context, key string) ([]View, bool) {
	if s.Cache == nil {
		return nil, false
	}
	b, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("booking cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var views []View
	if err := json.Unmarshal(b, &views); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("booking cache entry unreadable")
		return nil, false
	}
	return views, true
}

func (s *Service) store(ctx context.Context, key string, views []View) {
	if s.Cache == nil || s.CacheTTL <= 0 {
		return
	}
	b, err := json.Marshal(views)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, b, s.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("booking cache write failed")
	}
}

func (s *Service) invalidate(ctx context.Context, guestID, hostID uuid.UUID) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, keysFor(guestID, hostID)...); err != nil {
		log.Warn().Err(err).Str("guest_id", guestID.String()).Msg("booking cache invalidation failed")
	}
}
