package worker

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/drivelinehq/showroom-backend/internal/models"
)

// Notifier defines the interface for alerting the sales team about a
// fresh inquiry
type Notifier interface {
	Notify(ctx context.Context, inquiry *models.Inquiry) error
}

// mockNotifier simulates a sales-desk notification with a configurable
// success rate, standing in for the real email/SMS integration
type mockNotifier struct {
	successRate float64
	minDelay    time.Duration
	maxDelay    time.Duration
}

// NewMockNotifier creates a mock notifier
// successRate: probability of success (0.0 to 1.0), default 0.92 (92%)
func NewMockNotifier(successRate float64) Notifier {
	if successRate <= 0 || successRate > 1.0 {
		successRate = 0.92
	}

	return &mockNotifier{
		successRate: successRate,
		minDelay:    50 * time.Millisecond, // Simulate network latency
		maxDelay:    200 * time.Millisecond,
	}
}

// Notify simulates delivering the alert
func (n *mockNotifier) Notify(ctx context.Context, inquiry *models.Inquiry) error {
	delay := n.minDelay + time.Duration(rand.Int63n(int64(n.maxDelay-n.minDelay)))

	select {
	case <-time.After(delay):
		// Continue
	case <-ctx.Done():
		return ctx.Err()
	}

	if rand.Float64() > n.successRate {
		return fmt.Errorf("mock notifier failed: simulated network error")
	}

	return nil
}
