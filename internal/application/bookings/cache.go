package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache stores serialized booking lists. Implementations: cache.Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Scope selects which bookings a list read returns.
type Scope string

const (
	// ScopeGuest is bookings the profile made.
	ScopeGuest Scope = "user"
	// ScopeHost is bookings on listings the profile hosts.
	ScopeHost Scope = "host"
	// ScopeAll is both.
	ScopeAll Scope = "all"
)

func cacheKey(scope Scope, profileID uuid.UUID) string {
	return "bookings:" + string(scope) + ":" + profileID.String()
}

// keysFor lists every cached list a booking by guestID on a listing hosted by hostID appears in.
func keysFor(guestID, hostID uuid.UUID) []string {
	keys := []string{
		cacheKey(ScopeGuest, guestID),
		cacheKey(ScopeAll, guestID),
	}
	if hostID != uuid.Nil {
		keys = append(keys, cacheKey(ScopeHost, hostID), cacheKey(ScopeAll, hostID))
	}
	return keys
}
