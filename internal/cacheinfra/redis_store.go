package cacheinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the networked backend behind cache.Store. Entries expire
// natively through Redis TTLs and ClearPattern resolves true glob matching
// by enumerating keys with SCAN.
//
// Every operation absorbs backend faults: they are logged and surfaced as a
// miss or a no-op, never as an error to the caller.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStore dials addr and performs a bounded handshake. An unreachable
// backend is reported as an error so the caller can fall back to the
// in-process store; after construction the store never errors again.
func NewRedisStore(addr string, dialTimeout time.Duration, logger *slog.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dialTimeout <= 0 {
		dialTimeout = 2 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cacheinfra: redis handshake %s: %w", addr, err)
	}

	return &RedisStore{client: client, logger: logger}, nil
}

// Get returns the payload stored under key, or (nil, false) on a miss or
// backend fault.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache get treated as miss",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return nil, false
	}
	return data, true
}

// Set serializes value and stores it under key with the given TTL, which
// Redis enforces natively.
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache set dropped, payload not serializable",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.Warn("cache set dropped, backend write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}
	return true
}

// Delete removes key. Idempotent; a backend fault degrades to a no-op.
func (s *RedisStore) Delete(ctx context.Context, key string) bool {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("cache delete degraded to no-op",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}
	return true
}

// ClearPattern removes every key matching the glob pattern and returns the
// number of entries removed. Enumeration uses SCAN so large keyspaces are
// walked incrementally rather than blocking the backend.
func (s *RedisStore) ClearPattern(ctx context.Context, pattern string) int {
	count := 0
	iter := s.client.Scan(ctx, 0, pattern, 128).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("cache pattern clear skipped key",
				slog.String("key", iter.Val()),
				slog.String("error", err.Error()))
			continue
		}
		count++
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("cache pattern clear interrupted",
			slog.String("pattern", pattern),
			slog.String("error", err.Error()))
	}
	return count
}

// Close releases the underlying client. Deployments that run for the whole
// process lifetime can ignore it.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
