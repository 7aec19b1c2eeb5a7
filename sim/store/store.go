// Package store persists resolved quiz configurations keyed by a caller-chosen
// snapshot ID, together with the seed that produced them.
//
// A resolution pass is a pure function of (nodes, edges, seed), so a snapshot
// plus the original graph is everything needed for an exact replay: re-run the
// engine with the stored seed and compare. Implementations cover in-memory use
// (testing, single process), SQLite (zero-setup local persistence), and MySQL
// (shared production persistence).
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested snapshot ID does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one persisted resolution result.
//
// Type parameter C is the resolved configuration type; it must be
// JSON-serializable.
type Snapshot[C any] struct {
	// ID is the caller-chosen snapshot identifier.
	ID string `json:"id"`

	// Seed is the random seed the pass consumed. Replaying the same graph
	// with this seed reproduces Config exactly.
	Seed int64 `json:"seed"`

	// Config is the resolved configuration.
	Config C `json:"config"`

	// CreatedAt records when the snapshot was saved.
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists resolution snapshots.
//
// Implementations must be safe for concurrent use. Saving an existing ID
// overwrites the previous snapshot: the newest resolution for a given ID is
// the one that counts.
type Store[C any] interface {
	// Save persists one snapshot under its ID, overwriting any previous
	// snapshot with the same ID.
	Save(ctx context.Context, snapshot Snapshot[C]) error

	// Load retrieves the snapshot saved under id. Returns ErrNotFound when
	// the ID has never been saved.
	Load(ctx context.Context, id string) (Snapshot[C], error)

	// Delete removes the snapshot saved under id. Deleting an unknown ID is
	// not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored snapshot in unspecified order.
	List(ctx context.Context) ([]string, error)
}
