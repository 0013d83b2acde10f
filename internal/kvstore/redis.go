package kvstore

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisBackend stores values in Redis under a key prefix. Suits the
// shared deployment where several API instances serve the same users.
type redisBackend struct {
	client *redis.Client
	prefix string
}

// RedisConfig holds Redis backend configuration
type RedisConfig struct {
	URL    string
	Prefix string
}

// NewRedisBackend creates a Redis-backed backend and verifies the
// connection
func NewRedisBackend(cfg RedisConfig) (Backend, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "showroom"
	}

	return &redisBackend{
		client: client,
		prefix: prefix,
	}, nil
}

func (b *redisBackend) fullKey(key string) string {
	return b.prefix + ":" + key
}

func (b *redisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.fullKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (b *redisBackend) Write(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, b.fullKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// CompareAndSwap runs the read-compare-write inside WATCH/MULTI, so a
// concurrent write from another API instance or the worker aborts the
// transaction instead of being overwritten
func (b *redisBackend) CompareAndSwap(ctx context.Context, key string, old, data []byte) (bool, error) {
	full := b.fullKey(key)
	swapped := false

	err := b.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, full).Bytes()
		switch {
		case err == redis.Nil:
			if old != nil {
				return nil
			}
		case err != nil:
			return err
		case !bytes.Equal(current, old):
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, full, data, 0)
			return nil
		})
		if err == nil {
			swapped = true
		}
		return err
	}, full)

	if err == redis.TxFailedErr {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to swap %s: %w", key, err)
	}
	return swapped, nil
}

func (b *redisBackend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, b.fullKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Reset removes only keys under this backend's prefix, never the whole
// database
func (b *redisBackend) Reset(ctx context.Context) error {
	iter := b.client.Scan(ctx, 0, b.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := b.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}
