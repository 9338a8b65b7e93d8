// Package store provides SQLite-backed persistence for context snapshots
// and file change events.
package store

import "time"

// Snapshot is a persisted record of the user's working context at a point
// in time. Insertion order need not match timestamp order; the timestamp
// is advisory.
type Snapshot struct {
	ID              string
	Timestamp       time.Time
	ActiveFile      string
	ActiveDirectory string
	GitBranch       string
	Notes           string
}

// EventType classifies a file change event.
type EventType string

const (
	EventCreated  EventType = "created"
	EventModified EventType = "modified"
	EventDeleted  EventType = "deleted"
	// EventRenamed is part of the stored vocabulary but the watch pipeline
	// never produces it.
	EventRenamed EventType = "renamed"
)

// ParseEventType maps stored text back to an EventType. Unknown values
// default to EventModified so a single bad row cannot break a read.
func ParseEventType(s string) EventType {
	switch EventType(s) {
	case EventCreated, EventModified, EventDeleted, EventRenamed:
		return EventType(s)
	default:
		return EventModified
	}
}

// FileEvent is a persisted file change record.
type FileEvent struct {
	ID        string
	Timestamp time.Time
	Path      string
	Type      EventType
}

// ActivitySummary aggregates file events over a time range.
type ActivitySummary struct {
	TotalEvents         int64
	FilesModified       int64
	FilesCreated        int64
	MostActiveDirectory string
}

// SnapshotReader is the read-only view the analyzer depends on.
type SnapshotReader interface {
	RecentSnapshots(limit int) ([]Snapshot, error)
	ActivitySummary(since, until time.Time) (ActivitySummary, error)
}

// Store is the full persistence interface. Exactly one writer (the watch
// loop) is expected per database file; concurrent readers from other
// processes rely on SQLite's own locking.
type Store interface {
	SnapshotReader

	InsertSnapshot(s Snapshot) error
	Snapshot(id string) (*Snapshot, error)
	InsertFileEvent(e FileEvent) error
	FileEvents(since, until time.Time) ([]FileEvent, error)
	CleanupSnapshots(maxSnapshots int) (int64, error)
	CleanupFileEvents(olderThan time.Time) (int64, error)
	Close() error
}
