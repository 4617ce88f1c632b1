package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo handles database operations for response snapshots.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// GetFresh returns the snapshot stored under name when it is younger than
// maxAge, or nil when missing or expired.
func (r *SnapshotRepo) GetFresh(name string, maxAge time.Duration) (*Snapshot, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	var snapshot Snapshot
	err := r.db.QueryRow(`
		SELECT id, name, content_type, body, generated_at
		FROM snapshots
		WHERE name = ? AND generated_at >= ?
	`, name, cutoff).Scan(
		&snapshot.ID, &snapshot.Name, &snapshot.ContentType,
		&snapshot.Body, &snapshot.GeneratedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return &snapshot, nil
}

// Upsert stores a freshly generated document under name, replacing any
// previous snapshot.
func (r *SnapshotRepo) Upsert(name, contentType string, body []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO snapshots (id, name, content_type, body, generated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			content_type = excluded.content_type,
			body = excluded.body,
			generated_at = excluded.generated_at
	`, uuid.NewString(), name, contentType, body, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// GetSnapshotCount returns the number of stored snapshots.
func (r *SnapshotRepo) GetSnapshotCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot count: %w", err)
	}
	return count, nil
}
