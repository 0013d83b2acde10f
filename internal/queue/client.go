package queue

import (
	"context"

	"github.com/drivelinehq/showroom-backend/internal/models"
)

// Client defines the interface for the follow-up queue
type Client interface {
	// Publish sends a follow-up job to the queue
	Publish(ctx context.Context, job *models.FollowUpJob) error

	// Consume receives jobs from the queue and processes them with the handler
	// concurrency controls how many jobs can be processed simultaneously
	Consume(ctx context.Context, handler JobHandler, concurrency int) error

	// Close closes the queue connection
	Close() error

	// Health checks if the queue is healthy
	Health(ctx context.Context) error
}

// JobHandler is a function that processes a follow-up job
type JobHandler func(ctx context.Context, job *models.FollowUpJob) error
