package database

import (
	"time"
)

// SnapshotRepository is the response snapshot cache. Generated documents are
// stored by name and served while fresh; a stale snapshot is never returned.
type SnapshotRepository interface {
	GetFresh(name string, maxAge time.Duration) (*Snapshot, error)
	Upsert(name, contentType string, body []byte) error
	GetSnapshotCount() (int, error)
}
