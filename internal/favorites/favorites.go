// Package favorites maintains the user-curated set of vehicle ids marked
// for later reference.
package favorites

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/drivelinehq/showroom-backend/internal/kvstore"
)

// StorageKey is the fixed key the membership array is persisted under
const StorageKey = "user_favorites"

// Service is a vehicle-id membership set persisted through the kvstore.
// The persisted array keeps insertion order, but that order carries no
// meaning: two sets are equal when their members are equal.
//
// Every mutation rewrites the whole array immediately. The set is small
// (bounded by catalog size) and the store is local, so a full write per
// toggle is cheaper than any batching scheme would be worth.
type Service struct {
	mu     sync.Mutex
	store  *kvstore.Store
	logger *slog.Logger
}

// NewService creates a favorites service over the given store
func NewService(store *kvstore.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Load returns the persisted membership array. A missing or malformed
// value yields the empty set, never an error.
func (s *Service) Load(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Toggle adds id if absent, removes it if present, persists the result
// and returns the new membership array
func (s *Service) Toggle(ctx context.Context, id string) []string {
	// The read-modify-write must not interleave with a concurrent toggle,
	// or one of the two updates would be lost. The mutex covers goroutines
	// in this process; the store's atomic Update covers other processes
	// sharing the backend.
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated []string
	var removed bool
	s.store.Update(ctx, StorageKey, func(current []byte) (any, error) {
		members := decodeMembers(current)
		updated = make([]string, 0, len(members)+1)
		removed = false
		for _, member := range members {
			if member == id {
				removed = true
				continue
			}
			updated = append(updated, member)
		}
		if !removed {
			updated = append(updated, id)
		}
		return updated, nil
	})

	s.logger.Debug("favorite toggled",
		slog.String("vehicle_id", id),
		slog.Bool("is_favorite", !removed),
		slog.Int("count", len(updated)),
	)

	return updated
}

// IsFavorite reports whether id is a current member
func (s *Service) IsFavorite(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, member := range s.load(ctx) {
		if member == id {
			return true
		}
	}
	return false
}

// Count returns the current membership size
func (s *Service) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load(ctx))
}

// load reads the persisted array without taking the lock; callers hold it
func (s *Service) load(ctx context.Context) []string {
	var members []string
	if !s.store.Get(ctx, StorageKey, &members) {
		return []string{}
	}
	return members
}

// decodeMembers parses the raw stored document; missing or malformed
// state yields the empty set, same as Load
func decodeMembers(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	var members []string
	if err := json.Unmarshal(data, &members); err != nil {
		return []string{}
	}
	return members
}
