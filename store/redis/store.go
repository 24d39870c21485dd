// Package redis implements store.Store using Redis. Each result is a Hash
// under "<table>:result:<key>" so the worker-side write and the client-side
// read share one key scheme. Results are ephemeral; Put applies a TTL.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client)
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chrlshc/Huntaze-sub003/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// defaultTTL bounds how long results linger after a worker writes them.
// The dispatch client reads within its timeout window, so a day is generous
// headroom for operator inspection.
const defaultTTL = 24 * time.Hour

// resultKey returns the Hash key for one result: <table>:result:<key>
func resultKey(table, key string) string {
	return fmt.Sprintf("%s:result:%s", table, key)
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithTTL overrides how long written results are retained.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// Store implements store.Store backed by Redis.
type Store struct {
	client goredis.Cmdable
	logger *slog.Logger
	ttl    time.Duration
}

// New creates a Redis-backed result store. The caller owns the Redis
// client lifecycle.
func New(client goredis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client, logger: slog.Default(), ttl: defaultTTL}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get returns the result record for key, or store.ErrNotFound.
func (s *Store) Get(ctx context.Context, table, key string) (*store.Record, error) {
	fields, err := s.client.HGetAll(ctx, resultKey(table, key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("store/redis: get %q: %w", key, err)
	}
	// HGetAll returns an empty map, not redis.Nil, for missing keys.
	if len(fields) == 0 {
		return nil, store.ErrNotFound
	}

	rec := &store.Record{Key: key, Result: fields["result"]}
	if raw, ok := fields["written_at"]; ok && raw != "" {
		if ts, parseErr := time.Parse(time.RFC3339Nano, raw); parseErr == nil {
			rec.WrittenAt = ts
		}
	}
	return rec, nil
}

// Put writes a result record with the configured TTL. Workers call this
// after finishing a task.
func (s *Store) Put(ctx context.Context, table string, rec *store.Record) error {
	writtenAt := rec.WrittenAt
	if writtenAt.IsZero() {
		writtenAt = time.Now().UTC()
	}

	key := resultKey(table, rec.Key)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"result", rec.Result,
		"written_at", writtenAt.Format(time.RFC3339Nano),
	)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store/redis: put %q: %w", rec.Key, err)
	}
	return nil
}
