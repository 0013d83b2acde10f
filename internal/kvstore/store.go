// Package kvstore provides the durable key-value layer behind favorites
// and the inquiry log. The Store is fail-open: no operation ever returns
// an error to the caller. Write failures are logged and swallowed, and a
// corrupt stored value reads the same as a missing one, so a broken
// storage medium can degrade convenience features without interrupting a
// request.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// ErrKeyNotFound is returned by backends when a key has never been set
var ErrKeyNotFound = errors.New("key not found")

// Backend is the raw storage medium beneath a Store. Backends may fail;
// the Store absorbs every failure.
type Backend interface {
	// Read returns the raw bytes stored under key, or ErrKeyNotFound
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores the raw bytes under key, replacing any previous value
	Write(ctx context.Context, key string, data []byte) error

	// CompareAndSwap writes data under key only while the stored bytes
	// still equal old; a nil old requires the key to be unset. Reports
	// false without writing when another writer got there first. The
	// comparison must hold against writers in other processes, not just
	// other goroutines.
	CompareAndSwap(ctx context.Context, key string, old, data []byte) (bool, error)

	// Delete removes the key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Reset removes every key owned by this backend
	Reset(ctx context.Context) error
}

// Store wraps a Backend with JSON serialization and the fail-open
// error contract
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a store over the given backend
func New(backend Backend, logger *slog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
	}
}

// Set serializes value and writes it under key. Serialization and write
// failures are logged, never surfaced.
func (s *Store) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("kvstore: failed to serialize value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.backend.Write(ctx, key, data); err != nil {
		s.logger.Error("kvstore: failed to write value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Get reads the value stored under key into dest and reports whether a
// usable value was found. A missing key and a corrupt stored value both
// report false; dest is left untouched in either case.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	data, err := s.backend.Read(ctx, key)
	if err != nil {
		if err != ErrKeyNotFound {
			s.logger.Error("kvstore: failed to read value",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Error("kvstore: stored value is corrupt, treating as missing",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}

	return true
}

// maxSwapAttempts bounds the Update retry loop under write contention
const maxSwapAttempts = 16

// Update atomically replaces the document stored under key. fn receives
// the current raw bytes (nil when the key is unset) and returns the
// replacement value; it may run more than once when another process
// writes the same key concurrently, so it must be a pure function of its
// input. An error from fn aborts the update and is returned unchanged.
// Backend failures follow the fail-open contract: logged, and the update
// becomes a no-op.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte) (any, error)) error {
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		current, err := s.backend.Read(ctx, key)
		if err != nil && err != ErrKeyNotFound {
			s.logger.Error("kvstore: failed to read value for update",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			return nil
		}

		value, err := fn(current)
		if err != nil {
			return err
		}

		data, err := json.Marshal(value)
		if err != nil {
			s.logger.Error("kvstore: failed to serialize updated value",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			return nil
		}

		swapped, err := s.backend.CompareAndSwap(ctx, key, current, data)
		if err != nil {
			s.logger.Error("kvstore: failed to write updated value",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			return nil
		}
		if swapped {
			return nil
		}
	}

	s.logger.Error("kvstore: update abandoned after sustained write contention",
		slog.String("key", key),
	)
	return nil
}

// Remove deletes the key, best-effort
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.logger.Error("kvstore: failed to remove key",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Clear wipes the whole store, best-effort
func (s *Store) Clear(ctx context.Context) {
	if err := s.backend.Reset(ctx); err != nil {
		s.logger.Error("kvstore: failed to clear store",
			slog.String("error", err.Error()),
		)
	}
}
