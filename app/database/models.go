package database

import (
	"time"
)

// Snapshot is one cached generated document (sitemap or merchant feed).
type Snapshot struct {
	ID          string
	Name        string
	ContentType string
	Body        []byte
	GeneratedAt time.Time
}

// Age returns how long ago the snapshot was generated.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.GeneratedAt)
}
