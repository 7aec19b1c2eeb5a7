package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore persists snapshots in MySQL or MariaDB, for deployments where
// several processes share one snapshot catalog or snapshots must survive host
// restarts.
//
// The DSN follows the go-sql-driver format, e.g.
//
//	user:password@tcp(localhost:3306)/quizgraph?parseTime=true
//
// Never hardcode credentials; read the DSN from the environment.
//
// Type parameter C is the resolved configuration type (JSON-serializable).
type MySQLStore[C any] struct {
	db *sql.DB
}

// NewMySQLStore connects to the database, verifies the connection, and
// ensures the snapshot table exists.
func NewMySQLStore[C any](dsn string) (*MySQLStore[C], error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS resolution_snapshots (
			id VARCHAR(255) PRIMARY KEY,
			seed BIGINT NOT NULL,
			config JSON NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	return &MySQLStore[C]{db: db}, nil
}

// Save persists the snapshot, overwriting any previous one with the same ID.
func (m *MySQLStore[C]) Save(ctx context.Context, snapshot Snapshot[C]) error {
	config, err := json.Marshal(snapshot.Config)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", snapshot.ID, err)
	}
	createdAt := snapshot.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO resolution_snapshots (id, seed, config, created_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			seed = VALUES(seed),
			config = VALUES(config),
			created_at = VALUES(created_at)`,
		snapshot.ID, snapshot.Seed, string(config), createdAt)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", snapshot.ID, err)
	}
	return nil
}

// Load retrieves the snapshot saved under id.
func (m *MySQLStore[C]) Load(ctx context.Context, id string) (Snapshot[C], error) {
	var snapshot Snapshot[C]
	var config string

	row := m.db.QueryRowContext(ctx, `
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
func (m *MySQLStore[C]) Delete(ctx context.Context, id string) error {
	if _, err := m.db.ExecContext(ctx,
		`DELETE FROM resolution_snapshots WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", id, err)
	}
	return nil
}

// List returns every stored snapshot ID.
func (m *MySQLStore[C]) List(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT id FROM resolution_snapshots`)
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
func (m *MySQLStore[C]) Close() error {
	return m.db.Close()
}
