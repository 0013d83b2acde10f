package kvstore

import (
	"bytes"
	"context"
	"sync"
)

// memoryBackend keeps values in a map. Used in tests and as the
// zero-configuration default for local development.
type memoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend creates an in-memory backend
func NewMemoryBackend() Backend {
	return &memoryBackend{
		values: make(map[string][]byte),
	}
}

func (b *memoryBackend) Read(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	// Copy so callers can't mutate the stored value
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (b *memoryBackend) Write(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	b.values[key] = stored
	return nil
}

func (b *memoryBackend) CompareAndSwap(ctx context.Context, key string, old, data []byte) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, exists := b.values[key]
	if old == nil {
		if exists {
			return false, nil
		}
	} else if !exists || !bytes.Equal(current, old) {
		return false, nil
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	b.values[key] = stored
	return true, nil
}

func (b *memoryBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)
	return nil
}

func (b *memoryBackend) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values = make(map[string][]byte)
	return nil
}
