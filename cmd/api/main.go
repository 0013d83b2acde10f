package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/drivelinehq/showroom-backend/internal/config"
	"github.com/drivelinehq/showroom-backend/internal/db"
	"github.com/drivelinehq/showroom-backend/internal/favorites"
	"github.com/drivelinehq/showroom-backend/internal/handler"
	"github.com/drivelinehq/showroom-backend/internal/inquiries"
	"github.com/drivelinehq/showroom-backend/internal/kvstore"
	"github.com/drivelinehq/showroom-backend/internal/queue"
	"github.com/drivelinehq/showroom-backend/internal/repository"
	"github.com/drivelinehq/showroom-backend/internal/service"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting showroom API server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to database
	database, err := db.New(db.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("connected to database")

	// Build the favorites/inquiries store
	backend, err := newStorageBackend(cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize storage backend", slog.String("error", err.Error()))
		os.Exit(1)
	}
	store := kvstore.New(backend, logger)

	logger.Info("storage backend ready", slog.String("backend", cfg.Storage.Backend))

	// Connect to the follow-up queue
	queueClient, err := queue.NewRedisClient(queue.RedisConfig{
		URL:       cfg.Queue.RedisURL,
		QueueName: cfg.Queue.QueueName,
	}, logger)
	if err != nil {
		// The API keeps working without follow-up; inquiries still land
		// in the store
		logger.Warn("follow-up queue unavailable, continuing without it",
			slog.String("error", err.Error()),
		)
		queueClient = nil
	} else {
		defer queueClient.Close()
	}

	// Initialize repositories
	vehicleRepo := repository.NewVehicleRepository(database.DB)
	inquiryRepo := repository.NewInquiryRepository(database.DB)

	// Initialize core services
	favoritesSvc := favorites.NewService(store, logger)
	inquiryLog := inquiries.NewLog(store, logger)

	vehicleSvc := service.NewVehicleService(vehicleRepo, logger)
	inquirySvc := service.NewInquiryService(inquiryLog, vehicleRepo, inquiryRepo, queueClient, logger)

	// Initialize handlers
	vehicleHandler := handler.NewVehicleHandler(vehicleSvc, logger)
	inquiryHandler := handler.NewInquiryHandler(inquirySvc, logger)
	favoriteHandler := handler.NewFavoriteHandler(favoritesSvc, vehicleSvc, logger)
	healthHandler := handler.NewHealthHandler(database.DB, queueClient, logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(handler.RecoveryMiddleware(logger))
	r.Use(handler.LoggingMiddleware(logger))
	r.Use(handler.CORSMiddleware)

	// Register routes
	r.Get("/health", healthHandler.Health)

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", vehicleHandler.ListVehicles)
		r.Post("/", vehicleHandler.CreateVehicle)
		r.Get("/{id}", vehicleHandler.GetVehicle)
		r.Patch("/{id}/status", vehicleHandler.UpdateVehicleStatus)
		r.Get("/meta/manufacturers", vehicleHandler.ListManufacturers)
	})

	r.Route("/inquiries", func(r chi.Router) {
		r.Post("/", inquiryHandler.SubmitInquiry)
		r.Get("/", inquiryHandler.ListInquiries)
		r.Get("/archive", inquiryHandler.ListArchivedInquiries)
		r.Get("/archive/{id}", inquiryHandler.GetArchivedInquiry)
		r.Patch("/archive/{id}/status", inquiryHandler.UpdateArchivedInquiryStatus)
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", favoriteHandler.ListFavorites)
		r.Post("/toggle", favoriteHandler.ToggleFavorite)
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}

// newStorageBackend builds the kvstore backend selected by configuration
func newStorageBackend(cfg config.StorageConfig) (kvstore.Backend, error) {
	switch cfg.Backend {
	case config.StorageBackendRedis:
		return kvstore.NewRedisBackend(kvstore.RedisConfig{
			URL:    cfg.RedisURL,
			Prefix: cfg.Prefix,
		})
	case config.StorageBackendMemory:
		return kvstore.NewMemoryBackend(), nil
	default:
		return kvstore.NewFileBackend(cfg.Dir)
	}
}
