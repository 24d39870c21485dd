// Package memory is a fully in-memory implementation of store.Store.
// Safe for concurrent access. Intended for unit testing and development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/chrlshc/Huntaze-sub003/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store holds result records in nested maps keyed by table then key.
type Store struct {
	mu      sync.RWMutex
	results map[string]map[string]*store.Record
}

// New returns a new empty Store.
func New() *Store {
	return &Store{results: make(map[string]map[string]*store.Record)}
}

// Get returns the record for key in table, or store.ErrNotFound.
func (m *Store) Get(_ context.Context, table, key string) (*store.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.results[table][key]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// Put writes a result record, overwriting any previous value for the key.
// A zero WrittenAt is filled with the current time.
func (m *Store) Put(_ context.Context, table string, rec *store.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.results[table] == nil {
		m.results[table] = make(map[string]*store.Record)
	}
	cp := *rec
	if cp.WrittenAt.IsZero() {
		cp.WrittenAt = time.Now().UTC()
	}
	m.results[table][cp.Key] = &cp
	return nil
}

// Delete removes a record. Missing keys are a no-op.
func (m *Store) Delete(_ context.Context, table, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.results[table], key)
	return nil
}

// Len returns the number of records in a table.
func (m *Store) Len(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.results[table])
}
