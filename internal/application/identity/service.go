package identity

import (
	"context"
	"errors"
	"strings"

	"stayhub-backend/internal/application/session"
	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service maps external identities to profiles. It is the only place profiles are created.
type Service struct {
	DB *gorm.DB
}

func (s *Service) db(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.DB.WithContext(ctx)
}

// Find returns the profile for an external subject, or domain.ErrProfileNotFound.
func (s *Service) Find(ctx context.Context, tx *gorm.DB, subject string) (*domain.Profile, error) {
	if subject == "" {
		return nil, domain.ErrProfileNotFound
	}
	var p domain.Profile
	if err := s.db(ctx, tx).Where("clerk_user_id = ?", subject).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ResolveOrCreate returns the caller's profile, inserting it from the identity provider's claims on first use.
// The insert is an upsert on clerk_user_id so concurrent first calls converge on one row.
func (s *Service) ResolveOrCreate(ctx context.Context, tx *gorm.DB, creds *session.Credentials) (*domain.Profile, error) {
	if creds == nil || creds.Subject == "" {
		return nil, domain.ErrAuthRequired
	}
	p, err := s.Find(ctx, tx, creds.Subject)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}
	return s.Upsert(ctx, tx, creds)
}

// Upsert writes the identity provider's email, name and avatar onto the caller's profile,
// creating it if needed (conflict policy: update in place).
func (s *Service) Upsert(ctx context.Context, tx *gorm.DB, creds *session.Credentials) (*domain.Profile, error) {
	if creds == nil || creds.Subject == "" {
		return nil, domain.ErrAuthRequired
	}
	row := &domain.Profile{
		ClerkUserID: creds.Subject,
		Email:       creds.Email,
		FullName:    &creds.FullName,
		AvatarURL:   &creds.AvatarURL,
	}
	db := s.db(ctx, tx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clerk_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "avatar_url", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	// On conflict the generated id above is not the stored one; read back by the unique key.
	return s.Find(ctx, tx, creds.Subject)
}

// ProfileUpdate holds the user-editable profile fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	FullName  *string `json:"full_name" validate:"omitempty,max=120"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	IsHost    *bool   `json:"is_host"`
}

// Update applies a profile edit to profileID and returns the stored row.
func (s *Service) Update(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, in ProfileUpdate) (*domain.Profile, error) {
	if err := validation.Struct("Invalid profile", in); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}
	if in.IsHost != nil {
		updates["is_host"] = *in.IsHost
	}
	if len(updates) == 0 {
		return nil, domain.NewValidationError("No valid update fields provided")
	}
	db := s.db(ctx, tx)
	if err := db.Model(&domain.Profile{}).Where("id = ?", profileID).Updates(updates).Error; err != nil {
		return nil, err
	}
	var p domain.Profile
	if err := db.Where("id = ?", profileID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}
