package app

import (
	"torgi-backend/internal/auth"
	"torgi-backend/internal/config"
	"torgi-backend/internal/health"
	"torgi-backend/internal/infrastructure/database"
	"torgi-backend/internal/inspections"
	"torgi-backend/internal/listings"
	"torgi-backend/internal/middleware"
	"torgi-backend/internal/pricing"
	"torgi-backend/internal/tiers"
	"torgi-backend/internal/tradeorders"
	"torgi-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis handles so the entrypoint can verify
// connectivity before listening.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.HealthMarker(rdb))

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		if err := database.Seed(db); err != nil {
			return nil, nil, nil, err
		}
	}

	healthHandlers := &health.Handlers{Rdb: rdb, DB: db, AdminKey: cfg.HealthAdminKey}
	app.Get("/health/json", healthHandlers.JSON)
	app.Post("/health/reset", healthHandlers.Reset)

	// db may be nil if DATABASE_URL not set (e.g. tests); protected modules
	// are only mounted when storage is available.
	if db == nil {
		return app, db, rdb, nil
	}

	pricingCfg := pricing.Config{
		ProDiscountInspection: cfg.ProDiscountInspection,
		ProDiscountTrade:      cfg.ProDiscountTrade,
	}

	// Auth (no auth middleware)
	authHandlers := &auth.Handlers{
		UserFinder: &auth.GormUserFinder{DB: db},
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// Listings: public reads
	listingsService := &listings.Service{DB: db}
	listingsHandlers := &listings.Handlers{Service: listingsService}
	app.Get("/api/v1/listings", listingsHandlers.GetListings)
	app.Get("/api/v1/listings/:id", listingsHandlers.GetListing)

	// Users
	userHandlers := &users.Handlers{DB: db}
	app.Get("/api/v1/users/me", middleware.RequireAuth(), userHandlers.Me)

	// Inspection orders
	inspService := &inspections.Service{DB: db, Pricing: pricingCfg}
	inspHandlers := &inspections.Handlers{Service: inspService}
	inspGroup := app.Group("/api/v1/inspections")
	inspGroup.Get("/statuses", inspHandlers.Statuses)
	inspGroup.Post("/", middleware.RequireAuth(), inspHandlers.CreateOrder)
	inspGroup.Get("/", middleware.RequireAuth(), inspHandlers.ListMine)

	// Trade orders
	tradeService := &tradeorders.Service{DB: db, Pricing: pricingCfg}
	tradeHandlers := &tradeorders.Handlers{Service: tradeService}
	tradeGroup := app.Group("/api/v1/trade-orders")
	tradeGroup.Get("/statuses", tradeHandlers.Statuses)
	tradeGroup.Post("/", middleware.RequireAuth(), tradeHandlers.CreateOrder)
	tradeGroup.Get("/", middleware.RequireAuth(), tradeHandlers.ListMine)

	// Admin
	tierService := &tiers.Service{DB: db}
	tierHandlers := &tiers.Handlers{Service: tierService}
	adminGroup := app.Group("/api/v1/admin", middleware.RequireAdmin())
	adminGroup.Post("/listings/ingest", listingsHandlers.Ingest)
	adminGroup.Patch("/listings/:id/publish", listingsHandlers.Publish)
	adminGroup.Patch("/listings/:id/unpublish", listingsHandlers.Unpublish)
	adminGroup.Get("/tiers", tierHandlers.List)
	adminGroup.Post("/tiers", tierHandlers.Create)
	adminGroup.Put("/tiers/:id", tierHandlers.Update)
	adminGroup.Delete("/tiers/:id", tierHandlers.Delete)
	adminGroup.Get("/pricing-settings", tierHandlers.GetSettings)
	adminGroup.Put("/pricing-settings", tierHandlers.UpdateSettings)
	adminGroup.Get("/inspections", inspHandlers.ListAll)
	adminGroup.Patch("/inspections/:id/status", inspHandlers.UpdateStatus)
	adminGroup.Get("/trade-orders", tradeHandlers.ListAll)
	adminGroup.Patch("/trade-orders/:id/status", tradeHandlers.UpdateStatus)

	return app, db, rdb, nil
}
