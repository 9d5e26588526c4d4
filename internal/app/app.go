package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"glbiashara_backend/internal/auth"
	"glbiashara_backend/internal/config"
	"glbiashara_backend/internal/database"
	"glbiashara_backend/internal/handlers"
	"glbiashara_backend/internal/logger"
	"glbiashara_backend/internal/metrics"
	"glbiashara_backend/internal/middleware"
	"glbiashara_backend/internal/models"
	"glbiashara_backend/internal/repositories"
	"glbiashara_backend/internal/routes"
	"glbiashara_backend/internal/services"
	"glbiashara_backend/internal/storage"
	"glbiashara_backend/internal/validator"
)

const shutdownTimeout = 15 * time.Second

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gormDB *gorm.DB
	if cfg.Database.DSN != "" {
		logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
		gormDB, err = database.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("Database unavailable", "error", err)
		}
		if err := database.Migrate(gormDB); err != nil {
			logger.Fatal("Migration failed", "error", err)
		}
		if err := seedFirstUser(gormDB, cfg); err != nil {
			logger.Fatal("Failed to seed first user", "error", err)
		}
		logger.Info("Database connected")
	} else {
		logger.Warn("DATABASE_URL not set: tokens are trusted without a user lookup and login is disabled")
	}

	ginRouter, err := SetupRouter(ctx, cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Fatal("Server startup error", "error", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}

	if gormDB != nil {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	logger.Info("Server stopped")
}

// SetupRouter builds the storage backend, services and handlers and
// returns the configured engine. gormDB may be nil.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics, err := metrics.New(registry)
	if err != nil {
		return nil, err
	}

	mediaStore, err := storage.NewMediaStore(ctx, cfg.StorageConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "provider", mediaStore.Provider(), "namespace", cfg.Storage.Namespace)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWTTTL())

	// 1. Services
	serviceContainer := &services.ServiceContainer{
		UploadService: services.NewUploadService(mediaStore, services.UploadConfig{
			Namespace: cfg.Storage.Namespace,
			Timeout:   cfg.Upload.Timeout,
		}, appMetrics),
	}

	var users auth.UserLookup
	if gormDB != nil {
		userRepo := repositories.NewUserRepository(gormDB)
		users = userRepo
		serviceContainer.AuthService = services.NewAuthService(userRepo, tokens)
	}
	authn := auth.NewTokenAuthenticator(tokens, users)

	// 2. Handlers
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, appMetrics)

	filesDir := ""
	if cfg.Storage.Provider == "local" {
		filesDir = cfg.Storage.BasePath
	}
	routes.SetupPublicRoutes(ginRouter, appMetrics, filesDir)
	routes.RegisterRoutes(ginRouter, appHandlers, authn, appMetrics)

	return ginRouter, nil
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	appHandlers := &handlers.AppHandlers{
		UploadHandler: handlers.NewUploadHandler(baseHandler, sc.UploadService),
	}
	if sc.AuthService != nil {
		appHandlers.AuthHandler = handlers.NewAuthHandler(baseHandler, sc.AuthService)
	}
	return appHandlers
}

func initializeGinRouter(cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	return router
}

// seedFirstUser creates the configured account if it does not exist yet.
func seedFirstUser(db *gorm.DB, cfg *config.Config) error {
	email, password := cfg.Seed.Email, cfg.Seed.Password
	if email == "" || password == "" {
		logger.Warn("FIRST_USER_EMAIL or FIRST_USER_PASSWORD is not set. Skipping user seeding.")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		logger.Info("Seed user already exists. Skipping creation.", "email", email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for seed user: %w", result.Error)
	}

	if err := auth.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create seed user: %w", err)
	}

	logger.Info("Created seed user", "email", email, "user_id", user.ID)
	return nil
}
