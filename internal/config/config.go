package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	RedisURL    string
	// JWTSecret verifies bearer tokens minted by the identity provider's "supabase" template.
	JWTSecret string
	// RowLevelSecurity runs authenticated calls as the "authenticated" role with request.jwt.claims set.
	RowLevelSecurity bool
	HealthAdminKey   string
	BookingCacheTTL  time.Duration
	// AutoMigrate creates missing tables and indexes at startup (local databases).
	AutoMigrate bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = viper.GetString("NODE_ENV")
	}
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	return &Config{
		Env:              env,
		Port:             port,
		DatabaseURL:      dbURL,
		RedisURL:         viper.GetString("REDIS_URL"),
		JWTSecret:        viper.GetString("SUPABASE_JWT_SECRET"),
		RowLevelSecurity: strings.EqualFold(viper.GetString("SUPABASE_RLS"), "true"),
		HealthAdminKey:   viper.GetString("HEALTH_ADMIN_KEY"),
		BookingCacheTTL:  cacheTTL(viper.GetString("BOOKING_CACHE_TTL")),
		AutoMigrate:      viper.GetBool("AUTO_MIGRATE"),
	}, nil
}

func cacheTTL(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return 5 * time.Minute
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 5 * time.Minute
	}
	return d
}
