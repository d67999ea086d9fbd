package router

import (
	"net/http"
	"time"

	bookingsvc "stayhub-backend/internal/application/bookings"
	dashsvc "stayhub-backend/internal/application/dashboard"
	"stayhub-backend/internal/application/identity"
	listsvc "stayhub-backend/internal/application/listings"
	"stayhub-backend/internal/application/session"
	"stayhub-backend/internal/config"
	"stayhub-backend/internal/infrastructure/cache"
	"stayhub-backend/internal/infrastructure/database"
	bookinghandler "stayhub-backend/internal/interfaces/handlers/bookings"
	"stayhub-backend/internal/interfaces/handlers/caller"
	dashhandler "stayhub-backend/internal/interfaces/handlers/dashboard"
	healthhandler "stayhub-backend/internal/interfaces/handlers/health"
	listhandler "stayhub-backend/internal/interfaces/handlers/listings"
	profilehandler "stayhub-backend/internal/interfaces/handlers/profiles"
	"stayhub-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps are the connections the app is built on. DB and Redis are optional:
// without DB only the health routes are mounted, without Redis nothing is cached or counted.
type Deps struct {
	DB               *gorm.DB
	Redis            *redis.Client
	JWTSecret        string
	RowLevelSecurity bool
	HealthAdminKey   string
	BookingCacheTTL  time.Duration
}

// CreateApp opens the configured connections and builds the app.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := database.AutoMigrate(db); err != nil {
				return nil, nil, nil, err
			}
		}
	} else {
		log.Warn().Msg("no database URL configured; only health routes are served")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = cache.Open(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	app := New(Deps{
		DB:               db,
		Redis:            rdb,
		JWTSecret:        cfg.JWTSecret,
		RowLevelSecurity: cfg.RowLevelSecurity,
		HealthAdminKey:   cfg.HealthAdminKey,
		BookingCacheTTL:  cfg.BookingCacheTTL,
	})
	return app, db, rdb, nil
}

// New builds the Fiber app with global middleware and routes mounted at / and /api/v1.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS())
	app.Use(middleware.Tracing())
	app.Use(middleware.HealthMarker(d.Redis))
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{Rdb: d.Redis, HealthAdminKey: d.HealthAdminKey}
	if d.DB != nil {
		hh.DB = &database.Pinger{DB: d.DB}
	}
	hh.Register(app)

	if d.DB == nil {
		return app
	}

	bridge := &session.Bridge{DB: d.DB, Secret: []byte(d.JWTSecret), RowLevelSecurity: d.RowLevelSecurity}
	app.Use(middleware.Authenticate(bridge))
	auth := middleware.RequireAuth()

	ids := &identity.Service{DB: d.DB}
	resolver := &caller.Resolver{Bridge: bridge, Identity: ids}
	ls := &listsvc.Service{DB: d.DB}
	bs := &bookingsvc.Service{DB: d.DB, CacheTTL: d.BookingCacheTTL}
	if d.Redis != nil {
		bs.Cache = &cache.Redis{Client: d.Redis}
	}

	lh := &listhandler.Handlers{Service: ls, Caller: resolver}
	bh := &bookinghandler.Handlers{Service: bs, Caller: resolver}
	ph := &profilehandler.Handlers{Service: ids, Caller: resolver}
	dh := &dashhandler.Handlers{Service: &dashsvc.Service{Listings: ls, Bookings: bs}, Caller: resolver}

	for _, r := range []fiber.Router{app, app.Group("/api/v1")} {
		lh.Register(r, auth)
		bh.Register(r, auth)
		ph.Register(r, auth)
		dh.Register(r, auth)
	}
	return app
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
