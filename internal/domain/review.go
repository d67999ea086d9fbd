package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is read-only here; rows are written by a separate process.
type Review struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BookingID  *uuid.UUID `gorm:"column:booking_id;type:uuid" json:"booking_id"`
	ListingID  uuid.UUID  `gorm:"column:listing_id;type:uuid;index" json:"listing_id"`
	ReviewerID *uuid.UUID `gorm:"column:reviewer_id;type:uuid" json:"reviewer_id"`
	Rating     int        `gorm:"column:rating;not null" json:"rating"`
	Comment    *string    `gorm:"column:comment" json:"comment"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`

	Reviewer *Profile `gorm:"foreignKey:ReviewerID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
