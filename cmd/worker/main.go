package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drivelinehq/showroom-backend/internal/config"
	"github.com/drivelinehq/showroom-backend/internal/db"
	"github.com/drivelinehq/showroom-backend/internal/inquiries"
	"github.com/drivelinehq/showroom-backend/internal/kvstore"
	"github.com/drivelinehq/showroom-backend/internal/models"
	"github.com/drivelinehq/showroom-backend/internal/queue"
	"github.com/drivelinehq/showroom-backend/internal/repository"
	"github.com/drivelinehq/showroom-backend/internal/worker"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting showroom follow-up worker")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to database (inquiry archive)
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

	// The worker reads the same inquiry store the API writes; the file
	// backend only works single-node, so shared deployments use Redis
	backend, err := newStorageBackend(cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize storage backend", slog.String("error", err.Error()))
		os.Exit(1)
	}
	store := kvstore.New(backend, logger)
	inquiryLog := inquiries.NewLog(store, logger)

	// Connect to the follow-up queue
	queueClient, err := queue.NewRedisClient(queue.RedisConfig{
		URL:       cfg.Queue.RedisURL,
		QueueName: cfg.Queue.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer queueClient.Close()

	logger.Info("connected to Redis queue")

	// Initialize inquiry archive
	inquiryRepo := repository.NewInquiryRepository(database.DB)

	// Initialize mock notifier (92% success rate)
	notifier := worker.NewMockNotifier(0.92)

	// Initialize follow-up processor
	processor := worker.NewFollowUpProcessor(
		inquiryLog,
		inquiryRepo,
		notifier,
		cfg.Worker.MaxRetryCount,
		logger,
	)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start consuming jobs
	consumerErrors := make(chan error, 1)
	go func() {
		logger.Info("starting follow-up consumer",
			slog.Int("concurrency", cfg.Worker.Concurrency),
			slog.Int("max_retry_count", cfg.Worker.MaxRetryCount),
		)

		handler := func(ctx context.Context, job *models.FollowUpJob) error {
			return processor.Process(ctx, job)
		}

		consumerErrors <- queueClient.Consume(ctx, handler, cfg.Worker.Concurrency)
	}()

	// Wait for interrupt signal or consumer error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-consumerErrors:
		if err != nil && err != context.Canceled {
			logger.Error("consumer error", slog.String("error", err.Error()))
			os.Exit(1)
		}

	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))

		// Cancel context to stop consumer
		cancel()

		// Give the consumer time to finish the current job
		time.Sleep(5 * time.Second)

		logger.Info("worker stopped gracefully")
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
