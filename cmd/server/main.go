package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	swagger "github.com/gofiber/swagger"

	"github.com/drivedeck/drivedeck/internal/config"
	"github.com/drivedeck/drivedeck/internal/database"
	"github.com/drivedeck/drivedeck/internal/handlers"
	"github.com/drivedeck/drivedeck/internal/middleware"
	"github.com/drivedeck/drivedeck/internal/services"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"

	_ "github.com/drivedeck/drivedeck/docs/api" // Swagger docs
)

// @title DriveDeck API
// @version 1.0.0
// @description Multi-provider cloud-file dashboard service

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name drivedeck_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Select storage backend
	var store storage.Storage
	switch cfg.StorageBackend {
	case "memory":
		store = storage.NewMemory()
		log.Printf("Using in-memory storage (data is lost on restart)")
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		store = storage.NewGorm(db)
	}

	// Seed the provider catalog and demo account
	if cfg.SeedDemoData {
		if err := services.SeedDemoData(store); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("drivedeck")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Session store (cookie-backed, in-memory server side)
	sessions := session.New(session.Config{
		Expiration:     7 * 24 * time.Hour,
		KeyLookup:      "cookie:drivedeck_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	authRequired := middleware.AuthRequired(sessions)

	// Create handlers
	authHandler := &handlers.AuthHandler{Store: store, Sessions: sessions}
	providerHandler := &handlers.ProviderHandler{Store: store}
	fileHandler := &handlers.FileHandler{Store: store}
	folderHandler := &handlers.FolderHandler{Store: store}
	searchHandler := &handlers.SearchHandler{Store: store}
	shareHandler := &handlers.ShareHandler{Store: store, BaseURL: cfg.BaseURL}
	healthHandler := &handlers.HealthHandler{Store: store, Cfg: cfg}

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	api.Get("/health", healthHandler.Check)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authRequired, authHandler.Me)
	auth.Patch("/profile", authRequired, authHandler.UpdateProfile)

	// Provider routes
	providers := api.Group("/providers")
	providers.Get("/", providerHandler.List)
	providers.Get("/user-connected", authRequired, providerHandler.UserConnected)
	providers.Post("/connect", authRequired, providerHandler.Connect)
	providers.Get("/:id/files", authRequired, providerHandler.Files)
	providers.Delete("/:id", authRequired, providerHandler.Disconnect)

	// File routes
	files := api.Group("/files", authRequired)
	files.Post("/upload", fileHandler.Upload)
	files.Get("/:id", fileHandler.Get)
	files.Delete("/:id", fileHandler.Delete)
	files.Post("/:id/favorite", fileHandler.ToggleFavorite)
	files.Post("/:id/tags", fileHandler.AddTag)
	files.Delete("/:id/tags/:tag", fileHandler.RemoveTag)

	// Folder routes
	folders := api.Group("/folders", authRequired)
	folders.Post("/create", folderHandler.Create)
	folders.Get("/contents", folderHandler.Contents)

	// Search routes
	search := api.Group("/search", authRequired)
	search.Post("/raw", searchHandler.Raw)
	search.Post("/advanced", searchHandler.Advanced)
	search.Post("/smart", searchHandler.Smart)

	// Share routes; token resolution is public by design
	api.Get("/share/link/:token", shareHandler.Resolve)
	share := api.Group("/share", authRequired)
	share.Post("/", shareHandler.Create)
	share.Get("/", shareHandler.List)
	share.Delete("/:fileId", shareHandler.Revoke)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Errors raised by middleware carry their own code and type
	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
