package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking is a reservation of a listing by a guest profile.
// Status transitions happen outside this service; rows are inserted as pending.
type Booking struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ListingID  uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	GuestID    uuid.UUID `gorm:"column:guest_id;type:uuid;not null;index" json:"guest_id"`
	CheckIn    Date      `gorm:"column:check_in;not null" json:"check_in"`
	CheckOut   Date      `gorm:"column:check_out;not null" json:"check_out"`
	Guests     int       `gorm:"column:guests;not null" json:"guests"`
	TotalPrice int64     `gorm:"column:total_price;not null" json:"total_price"`
	Status     string    `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`

	Listing *Listing `gorm:"foreignKey:ListingID" json:"-"`
	Guest   *Profile `gorm:"foreignKey:GuestID" json:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate sets id if not already set (DBs without default uuid).
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Nights is the number of whole days between check-in and check-out.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Time().Sub(b.CheckIn.Time()).Hours() / 24)
}

// CountsTowardRevenue reports whether the booking's total is earned by the host.
func (b *Booking) CountsTowardRevenue() bool {
	return b.Status == BookingConfirmed || b.Status == BookingCompleted
}
