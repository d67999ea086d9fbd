package session

import (
	"context"
	"encoding/json"
	"strings"

	"stayhub-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Credentials are the verified identity behind one authenticated operation.
// They are passed explicitly down the call chain and never stored between requests.
type Credentials struct {
	Token     string
	Subject   string
	Email     string
	FullName  string
	AvatarURL string
	Claims    jwt.MapClaims
}

// Bridge exchanges identity-provider bearer tokens for store-scoped access.
type Bridge struct {
	DB     *gorm.DB
	Secret []byte
	// RowLevelSecurity scopes each call to the "authenticated" role with the caller's claims,
	// the way PostgREST does for Supabase row-level policies. Postgres only.
	RowLevelSecurity bool
}

// Exchange verifies a bearer token (with or without the "Bearer " prefix).
// An empty, malformed or expired token yields domain.ErrAuthRequired.
func (b *Bridge) Exchange(ctx context.Context, bearer string) (*Credentials, error) {
	token := strings.TrimSpace(bearer)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" || len(b.Secret) == 0 {
		return nil, domain.ErrAuthRequired
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrAuthRequired
		}
		return b.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrAuthRequired
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrAuthRequired
	}
	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, domain.ErrAuthRequired
	}

	return &Credentials{
		Token:     token,
		Subject:   sub,
		Email:     firstClaim(claims, "email", "primary_email"),
		FullName:  firstClaim(claims, "full_name", "name"),
		AvatarURL: firstClaim(claims, "avatar_url", "image_url", "picture"),
		Claims:    claims,
	}, nil
}

// Scope runs fn against a session scoped to creds for exactly one logical operation.
// With RowLevelSecurity the work runs in a transaction where the role and request.jwt.claims are
// set locally, so nothing leaks to the next statement on a pooled connection.
func (b *Bridge) Scope(ctx context.Context, creds *Credentials, fn func(tx *gorm.DB) error) error {
	if creds == nil {
		return domain.ErrAuthRequired
	}
	db := b.DB.WithContext(ctx)
	if !b.RowLevelSecurity {
		return fn(db.Session(&gorm.Session{NewDB: true}))
	}
	claims, err := json.Marshal(creds.Claims)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT set_config('request.jwt.claims', ?, true)", string(claims)).Error; err != nil {
			return err
		}
		if err := tx.Exec("SET LOCAL ROLE authenticated").Error; err != nil {
			return err
		}
		return fn(tx)
	})
}

func firstClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
