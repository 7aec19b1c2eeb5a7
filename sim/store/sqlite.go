package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists snapshots in a single-file SQLite database. Zero
// setup, suitable for local tooling and single-process deployments; use
// ":memory:" as the path for throwaway databases in tests.
//
// WAL mode is enabled so readers never block behind the single writer.
//
// Type parameter C is the resolved configuration type (JSON-serializable).
type SQLiteStore[C any] struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the database at path and
// ensures the snapshot table exists.
func NewSQLiteStore[C any](path string) (*SQLiteStore[C], error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite supports one writer at a time; a larger pool only causes
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS resolution_snapshots (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	return &SQLiteStore[C]{db: db}, nil
}

// Save persists the snapshot, overwriting any previous one with the same ID.
func (s *SQLiteStore[C]) Save(ctx context.Context, snapshot Snapshot[C]) error {
	config, err := json.Marshal(snapshot.Config)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", snapshot.ID, err)
	}
	createdAt := snapshot.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO resolution_snapshots (id, seed, config, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			seed = excluded.seed,
			config = excluded.config,
			created_at = excluded.created_at`,
		snapshot.ID, snapshot.Seed, string(config), createdAt)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", snapshot.ID, err)
	}
	return nil
}

// Load retrieves the snapshot saved under id.
func (s *SQLiteStore[C]) Load(ctx context.Context, id string) (Snapshot[C], error) {
	var snapshot Snapshot[C]
	var config string

	row := s.db.QueryRowContext(ctx, `
		SELECT seed, config, created_at FROM resolution_snapshots WHERE id = ?`, id)
	if err := row.Scan(&snapshot.Seed, &config, &snapshot.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return snapshot, ErrNotFound
		}
		return snapshot, fmt.Errorf("load snapshot %q: %w", id, err)
	}

	snapshot.ID = id
	if err := json.Unmarshal([]byte(config), &snapshot.Config); err != nil {
		return snapshot, fmt.Errorf("decode snapshot %q: %w", id, err)
	}
	return snapshot, nil
}

// Delete removes the snapshot saved under id, if any.
func (s *SQLiteStore[C]) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM resolution_snapshots WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", id, err)
	}
	return nil
}

// List returns every stored snapshot ID.
func (s *SQLiteStore[C]) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM resolution_snapshots`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan snapshot id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore[C]) Close() error {
	return s.db.Close()
}
