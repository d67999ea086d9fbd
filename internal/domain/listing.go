package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListingTypes are the property types a host may list.
var ListingTypes = []string{
	"apartment", "house", "villa", "room", "studio",
	"cabin", "loft", "cottage", "bungalow", "penthouse",
}

// Listing is a rentable property owned by a host profile.
type Listing struct {
	ID            uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	HostID        uuid.UUID                   `gorm:"column:host_id;type:uuid;not null;index" json:"host_id"`
	Title         string                      `gorm:"column:title;not null" json:"title"`
	Description   *string                     `gorm:"column:description" json:"description"`
	Type          string                      `gorm:"column:type;not null" json:"type"`
	PricePerNight int64                       `gorm:"column:price_per_night;not null" json:"price_per_night"`
	Guests        int                         `gorm:"column:guests;not null" json:"guests"`
	Bedrooms      int                         `gorm:"column:bedrooms;not null" json:"bedrooms"`
	Bathrooms     int                         `gorm:"column:bathrooms;not null" json:"bathrooms"`
	Address       string                      `gorm:"column:address;not null" json:"address"`
	City          string                      `gorm:"column:city;not null;index" json:"city"`
	State         string                      `gorm:"column:state;not null" json:"state"`
	Country       string                      `gorm:"column:country;not null" json:"country"`
	PostalCode    *string                     `gorm:"column:postal_code" json:"postal_code"`
	Amenities     datatypes.JSONSlice[string] `gorm:"column:amenities" json:"amenities"`
	Images        datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	IsActive      bool                        `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Latitude      *float64                    `gorm:"column:latitude" json:"latitude"`
	Longitude     *float64                    `gorm:"column:longitude" json:"longitude"`
	CreatedAt     time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at" json:"updated_at"`

	Host    *Profile `gorm:"foreignKey:HostID" json:"-"`
	Reviews []Review `gorm:"foreignKey:ListingID" json:"-"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate sets id if not already set (DBs without default uuid).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
