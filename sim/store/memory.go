package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store implementation for testing, development,
// and single-process callers that only need replay within one run of the
// program. Snapshots are deep-copied through JSON on the way in and out, so
// callers can never alias stored state.
//
// Type parameter C is the resolved configuration type.
type MemStore[C any] struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore[C any]() *MemStore[C] {
	return &MemStore[C]{snapshots: make(map[string][]byte)}
}

// Save persists the snapshot, overwriting any previous one with the same ID.
func (m *MemStore[C]) Save(_ context.Context, snapshot Snapshot[C]) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", snapshot.ID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snapshot.ID] = data
	return nil
}

// Load retrieves the snapshot saved under id.
func (m *MemStore[C]) Load(_ context.Context, id string) (Snapshot[C], error) {
	m.mu.RLock()
	data, ok := m.snapshots[id]
	m.mu.RUnlock()

	var snapshot Snapshot[C]
	if !ok {
		return snapshot, ErrNotFound
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("decode snapshot %q: %w", id, err)
	}
	return snapshot, nil
}

// Delete removes the snapshot saved under id, if any.
func (m *MemStore[C]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	return nil
}

// List returns every stored snapshot ID.
func (m *MemStore[C]) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.snapshots))
	for id := range m.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}
