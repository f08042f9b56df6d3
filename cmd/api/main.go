package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/palteria/palteria_api/internal/cart"
	"github.com/palteria/palteria_api/internal/config"
	"github.com/palteria/palteria_api/internal/database"
	"github.com/palteria/palteria_api/internal/handler"
	"github.com/palteria/palteria_api/internal/middleware"
	"github.com/palteria/palteria_api/internal/repository"
	"github.com/palteria/palteria_api/internal/service"
	"github.com/palteria/palteria_api/internal/storage"
	"github.com/palteria/palteria_api/internal/utils"
)

// main is the application entrypoint for the Paltería Mayorista API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("storage", cfg.Storage.Driver).Msg("starting palteria api")

	// 3. Open the key-value store backend
	kv, err := openKV(cfg)
	if err != nil {
		log.Error().Err(err).Msg("storage initialization failed")
		fmt.Fprintf(os.Stderr, "storage initialization failed: %v\n", err)
		os.Exit(1)
	}
	store := storage.New(kv)
	defer store.Close()

	// 4. Initialize JWT signing for the admin panel
	utils.InitJWT(cfg.JWTSecret)

	// 5. Initialize repositories
	catalogRepo := repository.NewCatalogRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	prefsRepo := repository.NewPrefsRepository(store)

	// 5a. Seed the demo catalog on first run (no-op once products exist)
	if err := catalogRepo.EnsureSeedProducts(); err != nil {
		log.Error().Err(err).Msg("catalog seeding failed")
		fmt.Fprintf(os.Stderr, "catalog seeding failed: %v\n", err)
		os.Exit(1)
	}

	// 6. Initialize services
	catalogSvc := service.NewCatalogService(catalogRepo, prefsRepo)
	checkoutSvc := service.NewCheckoutService(orderRepo, customerRepo)
	orderSvc := service.NewOrderService(orderRepo)
	authSvc := service.NewAdminAuthService(cfg.Admin)

	// 6a. Session cart registry (in-memory, per storefront session)
	sessions := cart.NewSessions()

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:     handler.NewHealthHandler(store),
		Catalog:    handler.NewCatalogHandler(catalogSvc),
		Cart:       handler.NewCartHandler(sessions, catalogSvc),
		Checkout:   handler.NewCheckoutHandler(sessions, checkoutSvc, customerRepo),
		Auth:       handler.NewAuthHandler(authSvc),
		Stock:      handler.NewStockHandler(catalogSvc),
		OrderAdmin: handler.NewOrderAdminHandler(orderSvc),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SessionMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health     *handler.HealthHandler
	Catalog    *handler.CatalogHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Auth       *handler.AuthHandler
	Stock      *handler.StockHandler
	OrderAdmin *handler.OrderAdminHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public storefront
	router.GET("/v1/catalog/today", handlers.Catalog.GetStorefront)
	router.POST("/v1/storefront/hero/seen", handlers.Catalog.MarkHeroSeen)

	cartGroup := router.Group("/v1/cart")
	{
		cartGroup.GET("", handlers.Cart.GetCart)
		cartGroup.POST("/items", handlers.Cart.AddItem)
		cartGroup.DELETE("/items/:productId", handlers.Cart.RemoveItem)
		cartGroup.DELETE("", handlers.Cart.ClearCart)
	}

	router.POST("/v1/checkout", handlers.Checkout.Confirm)
	router.GET("/v1/checkout/last-phone", handlers.Checkout.GetLastPhone)
	router.GET("/v1/customers/:phone", handlers.Checkout.GetProfile)

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.Use(jwtMiddleware.Handle())
	{
		// Stock management
		admin.GET("/products", handlers.Stock.ListProducts)
		admin.GET("/stock/today", handlers.Stock.GetStockGrid)
		admin.PUT("/stock/:productId", handlers.Stock.UpsertStock)
		admin.POST("/stock/publish", handlers.Stock.Publish)

		// Order dispatch board
		admin.GET("/orders/today", handlers.OrderAdmin.ListToday)
		admin.PUT("/orders/:id/status", handlers.OrderAdmin.SetStatus)
		admin.DELETE("/orders/:id", handlers.OrderAdmin.Delete)
	}
}

// openKV selects and initializes the storage backend from config.
func openKV(cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		return storage.NewFileKV(cfg.Storage.Dir)
	case config.DriverMemory:
		return storage.NewMemoryKV(), nil
	case config.DriverPostgres:
		db, err := database.Connect(&cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(db.DB); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Msg("migrations completed successfully")
		return storage.NewPostgresKV(db), nil
	case config.DriverRedis:
		return storage.NewRedisKV(&cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
