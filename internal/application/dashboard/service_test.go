package dashboard

import (
	"context"
	"testing"
	"time"

	"stayhub-backend/internal/application/bookings"
	"stayhub-backend/internal/application/listings"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T, db *gorm.DB) (host, guest *domain.Profile, beach, loft *domain.Listing) {
	t.Helper()
	host = &domain.Profile{ClerkUserID: "host_1", Email: "host@example.com", IsHost: true}
	guest = &domain.Profile{ClerkUserID: "guest_1", Email: "guest@example.com"}
	require.NoError(t, db.Create(host).Error)
	require.NoError(t, db.Create(guest).Error)

	mk := func(title string) *domain.Listing {
		l := &domain.Listing{
			HostID: host.ID, Title: title, Type: "villa", PricePerNight: 4000, Guests: 2,
			Address: "1 Road", City: "Goa", State: "Goa", Country: "India", IsActive: true,
		}
		require.NoError(t, db.Create(l).Error)
		return l
	}
	return host, guest, mk("Beach House"), mk("City Loft")
}

func book(t *testing.T, db *gorm.DB, guest *domain.Profile, l *domain.Listing, total int64, status string) {
	t.Helper()
	in, _ := domain.ParseDate("2025-08-01")
	out, _ := domain.ParseDate("2025-08-04")
	require.NoError(t, db.Create(&domain.Booking{
		ListingID: l.ID, GuestID: guest.ID, CheckIn: in, CheckOut: out,
		Guests: 2, TotalPrice: total, Status: status, CreatedAt: time.Now(),
	}).Error)
}

func TestSummary(t *testing.T) {
	db := testdb.Open(t)
	host, guest, beach, loft := seed(t, db)
	book(t, db, guest, beach, 10000, domain.BookingConfirmed)
	book(t, db, guest, beach, 7000, domain.BookingCompleted)
	book(t, db, guest, beach, 9000, domain.BookingPending)
	book(t, db, guest, beach, 3000, domain.BookingCancelled)

	svc := &Service{Listings: &listings.Service{DB: db}, Bookings: &bookings.Service{DB: db}}
	sum, err := svc.Summary(context.Background(), nil, host.ID)
	require.NoError(t, err)

	assert.Len(t, sum.Listings, 2)
	assert.Len(t, sum.Bookings, 4)
	assert.Equal(t, 4, sum.TotalBookings)
	assert.Equal(t, int64(17000), sum.Revenue)
	assert.Equal(t, 4, sum.BookingCounts[beach.ID.String()])
	assert.Equal(t, 0, sum.BookingCounts[loft.ID.String()])
}

func TestSummary_GuestWithNoListings(t *testing.T) {
	db := testdb.Open(t)
	_, guest, beach, _ := seed(t, db)
	book(t, db, guest, beach, 10000, domain.BookingConfirmed)

	svc := &Service{Listings: &listings.Service{DB: db}, Bookings: &bookings.Service{DB: db}}
	sum, err := svc.Summary(context.Background(), nil, guest.ID)
	require.NoError(t, err)
	assert.Empty(t, sum.Listings)
	assert.Empty(t, sum.Bookings)
	assert.Zero(t, sum.Revenue)
}

func TestSummary_BookingsFailureDegrades(t *testing.T) {
	db := testdb.Open(t)
	host, guest, beach, _ := seed(t, db)
	book(t, db, guest, beach, 10000, domain.BookingConfirmed)
	require.NoError(t, db.Migrator().DropTable(&domain.Booking{}))

	svc := &Service{Listings: &listings.Service{DB: db}, Bookings: &bookings.Service{DB: db}}
	sum, err := svc.Summary(context.Background(), nil, host.ID)
	require.NoError(t, err)
	assert.Len(t, sum.Listings, 2)
	assert.NotNil(t, sum.Bookings)
	assert.Empty(t, sum.Bookings)
	assert.Zero(t, sum.Revenue)
}
