package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the internal user record keyed to an external identity (clerk_user_id).
type Profile struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ClerkUserID string    `gorm:"column:clerk_user_id;not null;uniqueIndex" json:"clerk_user_id"`
	Email       string    `gorm:"column:email;not null" json:"email"`
	FullName    *string   `gorm:"column:full_name" json:"full_name"`
	AvatarURL   *string   `gorm:"column:avatar_url" json:"avatar_url"`
	IsHost      bool      `gorm:"column:is_host;not null;default:false" json:"is_host"`
	Phone       *string   `gorm:"column:phone" json:"phone"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate sets id if not already set (DBs without default uuid).
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
