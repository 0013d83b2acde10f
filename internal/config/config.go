package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backend selectors for the favorites/inquiries store
const (
	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Queue    QueueConfig
	API      APIConfig
	Storage  StorageConfig
	Worker   WorkerConfig
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// QueueConfig holds follow-up queue configuration (Redis)
type QueueConfig struct {
	RedisURL  string
	QueueName string
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port int
}

// StorageConfig selects the backend for the favorites/inquiries store
type StorageConfig struct {
	Backend  string // memory, file or redis
	Dir      string // file backend only
	RedisURL string // redis backend only
	Prefix   string // redis backend only
}

// WorkerConfig holds follow-up worker configuration
type WorkerConfig struct {
	Concurrency   int
	MaxRetryCount int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	apiPort, err := strconv.Atoi(getEnv("API_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}

	workerConcurrency, err := strconv.Atoi(getEnv("WORKER_CONCURRENCY", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %w", err)
	}

	maxRetryCount, err := strconv.Atoi(getEnv("MAX_RETRY_COUNT", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_RETRY_COUNT: %w", err)
	}

	storageBackend := getEnv("STORAGE_BACKEND", StorageBackendFile)
	switch storageBackend {
	case StorageBackendMemory, StorageBackendFile, StorageBackendRedis:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: %s (must be memory, file or redis)", storageBackend)
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "showroom"),
			Password: getEnv("DB_PASSWORD", "showroom"),
			DBName:   getEnv("DB_NAME", "showroom"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Queue: QueueConfig{
			RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),
			QueueName: getEnv("QUEUE_NAME", "inquiry_followups"),
		},
		API: APIConfig{
			Port: apiPort,
		},
		Storage: StorageConfig{
			Backend:  storageBackend,
			Dir:      getEnv("STORAGE_DIR", "./data"),
			RedisURL: getEnv("STORAGE_REDIS_URL", getEnv("REDIS_URL", "redis://localhost:6379/0")),
			Prefix:   getEnv("STORAGE_PREFIX", "showroom"),
		},
		Worker: WorkerConfig{
			Concurrency:   workerConcurrency,
			MaxRetryCount: maxRetryCount,
		},
	}, nil
}

// DSN returns the database connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
