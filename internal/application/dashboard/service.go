package dashboard

import (
	"context"

	"stayhub-backend/internal/application/bookings"
	"stayhub-backend/internal/application/listings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// HostSummary is what the host dashboard page renders.
type HostSummary struct {
	Listings []listings.Summary `json:"listings"`
	Bookings []bookings.View    `json:"bookings"`
	// BookingCounts is keyed by listing id; listings without bookings map to 0.
	BookingCounts map[string]int `json:"bookingCounts"`
	TotalBookings int            `json:"totalBookings"`
	Revenue       int64          `json:"revenue"`
}

type Service struct {
	Listings *listings.Service
	Bookings *bookings.Service
}

// Summary collects the host's listings and the bookings made on them.
// A failed bookings read leaves the dashboard with listings only.
func (s *Service) Summary(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*HostSummary, error) {
	mine, err := s.Listings.ListForHost(ctx, tx, profileID)
	if err != nil {
		return nil, err
	}
	views, err := s.Bookings.ListForHost(ctx, tx, profileID)
	if err != nil {
		log.Error().Err(err).Str("profile_id", profileID.String()).Msg("host dashboard bookings read failed")
		views = []bookings.View{}
	}

	out := &HostSummary{
		Listings:      mine,
		Bookings:      views,
		BookingCounts: make(map[string]int, len(mine)),
		TotalBookings: len(views),
	}
	for _, l := range mine {
		out.BookingCounts[l.ID.String()] = 0
	}
	for _, b := range views {
		out.BookingCounts[b.ListingID.String()]++
		if b.CountsTowardRevenue() {
			out.Revenue += b.TotalPrice
		}
	}
	return out, nil
}
