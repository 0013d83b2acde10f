// Package inquiries maintains the append-only log of submitted contact
// requests. The log is persisted newest-first through the kvstore, so
// reads come back in reverse-chronological order without sorting.
package inquiries

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drivelinehq/showroom-backend/internal/models"
)

// StorageKey is the fixed key the inquiry array is persisted under
const StorageKey = "car_inquiries"

// Store is the subset of the kvstore the log needs; narrowed for tests.
// Mutations go through Update so the API and worker processes sharing
// one backend cannot overwrite each other's writes.
type Store interface {
	Get(ctx context.Context, key string, dest any) bool
	Update(ctx context.Context, key string, fn func(current []byte) (any, error)) error
}

// SubmitRequest carries the caller-supplied inquiry fields. Id, timestamp
// and status are stamped by the log, never by the caller.
type SubmitRequest struct {
	VehicleID    string
	VehicleBrand string
	VehicleModel string
	Name         string
	Phone        string
	Email        string
	Message      string
}

// SubmitResult is returned as a value rather than an error so a form
// handler can show a recoverable failure without wrapping the call
type SubmitResult struct {
	Success bool
	Inquiry *models.Inquiry
	Err     error
}

// Log is the inquiry log service
type Log struct {
	mu     sync.Mutex
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewLog creates an inquiry log over the given store
func NewLog(store Store, logger *slog.Logger) *Log {
	return &Log{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Submit stamps the request with a generated id, an RFC 3339 timestamp
// and status "new", then prepends it to the persisted log. Given the
// store's fail-open contract the result is always a success in practice;
// the result shape exists so backend-integrated variants can report
// remote failures through the same channel.
func (l *Log) Submit(ctx context.Context, req SubmitRequest) SubmitResult {
	inquiry := models.Inquiry{
		ID:           newID(),
		VehicleID:    req.VehicleID,
		VehicleBrand: req.VehicleBrand,
		VehicleModel: req.VehicleModel,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Message:      req.Message,
		CreatedAt:    l.now().UTC().Format(time.RFC3339),
		Status:       models.InquiryStatusNew,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.store.Update(ctx, StorageKey, func(current []byte) (any, error) {
		existing := decodeEntries(current)
		updated := make([]models.Inquiry, 0, len(existing)+1)
		updated = append(updated, inquiry)
		updated = append(updated, existing...)
		return updated, nil
	})

	l.logger.Info("inquiry submitted",
		slog.String("inquiry_id", inquiry.ID),
		slog.String("vehicle_id", inquiry.VehicleID),
	)

	return SubmitResult{Success: true, Inquiry: &inquiry}
}

// List returns all persisted inquiries, newest first. An empty log yields
// an empty slice, never an error.
func (l *Log) List(ctx context.Context) []models.Inquiry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// GetByID returns the inquiry with the given id
func (l *Log) GetByID(ctx context.Context, id string) (*models.Inquiry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, inquiry := range l.load(ctx) {
		if inquiry.ID == id {
			return &inquiry, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg("inquiry " + id + " not found")
}

// MarkStatus updates the status of the inquiry with the given id.
// Status transitions are driven by the follow-up worker, not by the
// submitting client.
func (l *Log) MarkStatus(ctx context.Context, id, status string) error {
	if !models.IsValidInquiryStatus(status) {
		return models.ErrInvalidInput("invalid inquiry status: " + status)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.store.Update(ctx, StorageKey, func(current []byte) (any, error) {
		entries := decodeEntries(current)
		for i := range entries {
			if entries[i].ID == id {
				entries[i].Status = status
				return entries, nil
			}
		}
		return nil, models.ErrNotFoundWithMsg("inquiry " + id + " not found")
	})
}

// load reads the persisted log without taking the lock; callers hold it
func (l *Log) load(ctx context.Context) []models.Inquiry {
	var entries []models.Inquiry
	if !l.store.Get(ctx, StorageKey, &entries) {
		return []models.Inquiry{}
	}
	return entries
}

// decodeEntries parses the raw stored log; missing or malformed state
// reads as empty, same as load
func decodeEntries(data []byte) []models.Inquiry {
	if len(data) == 0 {
		return []models.Inquiry{}
	}
	var entries []models.Inquiry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []models.Inquiry{}
	}
	return entries
}

// newID generates a collision-resistant inquiry id. Falls back to a
// pseudo-random base-36 string if UUID generation fails.
func newID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return strconv.FormatInt(rand.Int63(), 36)
	}
	return id.String()
}
