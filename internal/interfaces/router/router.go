package router

import (
	authsvc "gavel-backend/internal/application/auth"
	bidsvc "gavel-backend/internal/application/bids"
	catsvc "gavel-backend/internal/application/catalog"
	commentsvc "gavel-backend/internal/application/comments"
	lesvc "gavel-backend/internal/application/listingevents"
	listsvc "gavel-backend/internal/application/listings"
	watchsvc "gavel-backend/internal/application/watchlist"
	"gavel-backend/internal/config"
	"gavel-backend/internal/infrastructure/database"
	authhandler "gavel-backend/internal/interfaces/handlers/auth"
	bidhandler "gavel-backend/internal/interfaces/handlers/bids"
	cathandler "gavel-backend/internal/interfaces/handlers/catalog"
	commenthandler "gavel-backend/internal/interfaces/handlers/comments"
	healthhandler "gavel-backend/internal/interfaces/handlers/health"
	lehandler "gavel-backend/internal/interfaces/handlers/listingevents"
	listhandler "gavel-backend/internal/interfaces/handlers/listings"
	watchhandler "gavel-backend/internal/interfaces/handlers/watchlist"
	"gavel-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route registration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	// Health (no auth)
	hh := &healthhandler.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", hh.JSON)

	if db == nil {
		// No DB configured (e.g. some tests); only health routes are live.
		return app, db, rdb, nil
	}

	// Auth (no auth middleware)
	authHandlers := &authhandler.Handlers{
		Service: &authsvc.Service{DB: db},
		Rdb:     rdb,
		Config:  sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// Catalog: reads are public (index page needs them), writes need auth.
	catHandlers := &cathandler.Handlers{Service: &catsvc.Service{DB: db}}
	catGroup := app.Group("/api/v1/catalog")
	catGroup.Get("/categories", catHandlers.GetCategories)
	catGroup.Get("/brands", catHandlers.GetBrands)
	catGroup.Get("/models", catHandlers.GetModels)
	catGroup.Post("/categories", middleware.RequireAuth(), catHandlers.CreateCategory)
	catGroup.Post("/brands", middleware.RequireAuth(), catHandlers.CreateBrand)
	catGroup.Post("/models", middleware.RequireAuth(), catHandlers.CreateModel)

	// Listings: browsing is public, creation needs auth.
	listHandlers := &listhandler.Handlers{Service: &listsvc.Service{DB: db}}
	listGroup := app.Group("/api/v1/listings")
	listGroup.Get("/get-all-listings", listHandlers.GetAllListings)
	listGroup.Get("/get-listing/:listing_id", listHandlers.GetListingByID)
	listGroup.Post("/create-listing", middleware.RequireAuth(), listHandlers.CreateListing)
	listGroup.Get("/get-won-listings", middleware.RequireAuth(), listHandlers.GetWonListings)

	// Bids (auth required)
	bidHandlers := &bidhandler.Handlers{Service: &bidsvc.Service{DB: db}}
	bidGroup := app.Group("/api/v1/bids", middleware.RequireAuth())
	bidGroup.Post("/place-bid", bidHandlers.PlaceBid)
	bidGroup.Post("/close-listing", bidHandlers.CloseListing)
	bidGroup.Get("/get-bids/:listing_id", bidHandlers.GetBids)

	// Watchlist (auth required)
	watchHandlers := &watchhandler.Handlers{Service: &watchsvc.Service{DB: db}}
	watchGroup := app.Group("/api/v1/watchlist", middleware.RequireAuth())
	watchGroup.Post("/toggle", watchHandlers.Toggle)
	watchGroup.Get("/", watchHandlers.GetWatchlist)

	// Comments (auth required to write; reads public)
	commentHandlers := &commenthandler.Handlers{Service: &commentsvc.Service{DB: db}}
	commentGroup := app.Group("/api/v1/comments")
	commentGroup.Get("/get-comments/:listing_id", commentHandlers.GetComments)
	commentGroup.Post("/add-comment", middleware.RequireAuth(), commentHandlers.AddComment)

	// Listing events (auth required)
	leHandlers := &lehandler.Handlers{Service: &lesvc.Service{DB: db}}
	app.Get("/api/v1/listing-events/:listing_id", middleware.RequireAuth(), leHandlers.GetListingEvents)

	return app, db, rdb, nil
}
