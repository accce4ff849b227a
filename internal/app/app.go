package app

import (
	"context"

	"homestead-backend/internal/accounts"
	"homestead-backend/internal/config"
	"homestead-backend/internal/database"
	"homestead-backend/internal/health"
	"homestead-backend/internal/middleware"
	"homestead-backend/internal/propertyevents"
	"homestead-backend/internal/registry"
	"homestead-backend/internal/settlement"
	"homestead-backend/internal/transactions"
	"homestead-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration, opens the database, and bootstraps the ledger.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis)
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

	// Tracing + route logger
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// Health + static assets (no auth)
	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/api/health", healthHandlers.Status)
	app.Static("/uploads", cfg.UploadDir)

	if db != nil {
		ledger := &registry.Ledger{DB: db, Settler: settlement.AccountSettler{}}
		if cfg.DeployerAccount != "" {
			if err := ledger.Bootstrap(context.Background(), cfg.DeployerAccount); err != nil {
				return nil, nil, nil, err
			}
		}

		// Accounts module: connect is public, the rest needs a session.
		acctService := &accounts.Service{DB: db, Ledger: ledger}
		acctHandlers := &accounts.Handlers{Service: acctService, Rdb: rdb, Config: sessionCfg}
		acctGroup := app.Group("/api/v1/accounts")
		acctGroup.Post("/connect", acctHandlers.Connect)
		acctGroup.Delete("/disconnect", acctHandlers.Disconnect)
		acctGroup.Get("/me", acctHandlers.Me)
		acctGroup.Get("/balance/:address", acctHandlers.Balance)
		acctGroup.Post("/fund", middleware.RequireAccount(), acctHandlers.Fund)

		// Registry module: reads are public, mutations need a session.
		regHandlers := &registry.Handlers{Ledger: ledger}
		regGroup := app.Group("/api/v1/registry")
		regGroup.Get("/properties", regHandlers.GetProperties)
		regGroup.Get("/properties/:id", regHandlers.GetProperty)
		regGroup.Get("/properties/:id/owner", regHandlers.OwnerOf)
		regGroup.Get("/total-properties", regHandlers.TotalProperties)
		regGroup.Get("/platform-owners/:account", regHandlers.IsPlatformOwner)
		regGroup.Post("/add-property", middleware.RequireAccount(), regHandlers.AddProperty)
		regGroup.Post("/buy-property", middleware.RequireAccount(), regHandlers.BuyProperty)
		regGroup.Post("/add-platform-owner", middleware.RequireAccount(), regHandlers.AddPlatformOwner)

		// Transactions module
		txService := &transactions.Service{DB: db}
		txHandlers := &transactions.Handlers{Service: txService, Ledger: ledger}
		txGroup := app.Group("/api/v1/transactions", middleware.RequireAccount())
		txGroup.Get("/get-transactions", txHandlers.GetTransactions)

		// Property events module
		peService := &propertyevents.Service{DB: db}
		peHandlers := &propertyevents.Handlers{Service: peService, Ledger: ledger}
		peGroup := app.Group("/api/v1/property-events")
		peGroup.Get("/:id", peHandlers.GetPropertyEvents)
	}

	// Uploads module (asset service)
	uploadService := &uploads.Service{Dir: cfg.UploadDir, PublicBaseURL: cfg.PublicBaseURL}
	uploadHandlers := &uploads.Handlers{Service: uploadService}
	app.Post("/api/upload-multiple", middleware.RequireAccount(), uploadHandlers.UploadMultiple)
	app.Post("/api/upload-json", middleware.RequireAccount(), uploadHandlers.UploadJSON)

	return app, db, rdb, nil
}
