// Package store defines the result-store boundary: the external key-value
// service where executed browser-worker tasks write their outcome, keyed by
// the dispatch correlation id.
//
// The dispatch client only ever reads. Backends also expose a Put method on
// the concrete type for the worker-side write and for tests, but Put is not
// part of the client-facing contract. Backends: Redis, Postgres, and Memory.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no result has been written yet for
// the given key. The dispatch client treats it as "keep polling".
var ErrNotFound = errors.New("store: result not found")

// Record is one task result as stored by a worker.
type Record struct {
	// Key is the dispatch correlation id the worker wrote under.
	Key string

	// Result is the string-encoded JSON blob the worker produced. The
	// store does not validate it; malformed content degrades gracefully
	// at read time in the client.
	Result string

	// WrittenAt is when the worker wrote the result.
	WrittenAt time.Time
}

// Store reads task results written by remote workers.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the result record for key in the given table, or
	// ErrNotFound if the worker has not written one yet.
	Get(ctx context.Context, table, key string) (*Record, error)
}
