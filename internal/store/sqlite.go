package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quietdesk/cockpit/internal/store/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLite implements Store on a single SQLite database file.
type SQLite struct {
	db *sql.DB
}

// Open opens or creates a database at the given path, creating parent
// directories as needed and applying pending schema migrations.
func Open(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}
	return open(path)
}

// OpenInMemory opens a private in-memory database, mainly for tests.
func OpenInMemory() (*SQLite, error) {
	return open(":memory:")
}

func open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	// A single writer owns the connection; more connections would only
	// fight over the file lock.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database %s: %w", path, err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// InsertSnapshot persists a snapshot row.
func (s *SQLite) InsertSnapshot(snap Snapshot) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (id, timestamp, active_file, active_directory, git_branch, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID,
		snap.Timestamp.UTC().Format(time.RFC3339Nano),
		nullable(snap.ActiveFile),
		nullable(snap.ActiveDirectory),
		nullable(snap.GitBranch),
		nullable(snap.Notes),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// Snapshot returns a snapshot by ID, or nil when no row exists.
func (s *SQLite) Snapshot(id string) (*Snapshot, error) {
	row := s.db.QueryRow(
		`SELECT id, timestamp, active_file, active_directory, git_branch, notes
		 FROM snapshots WHERE id = ?`, id)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot %s: %w", id, err)
	}
	return &snap, nil
}

// RecentSnapshots returns up to limit snapshots, newest first by timestamp.
func (s *SQLite) RecentSnapshots(limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, active_file, active_directory, git_branch, notes
		 FROM snapshots ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// InsertFileEvent persists a file change event.
func (s *SQLite) InsertFileEvent(e FileEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO file_events (id, timestamp, path, event_type) VALUES (?, ?, ?, ?)`,
		e.ID,
		e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.Path,
		string(e.Type),
	)
	if err != nil {
		return fmt.Errorf("inserting file event: %w", err)
	}
	return nil
}

// FileEvents returns events with timestamps in [since, until), newest first.
func (s *SQLite) FileEvents(since, until time.Time) ([]FileEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, path, event_type FROM file_events
		 WHERE timestamp >= ? AND timestamp < ?
		 ORDER BY timestamp DESC`,
		since.UTC().Format(time.RFC3339Nano),
		until.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("querying file events: %w", err)
	}
	defer rows.Close()

	var events []FileEvent
	for rows.Next() {
		var (
			e  FileEvent
			ts string
			et string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Path, &et); err != nil {
			return nil, fmt.Errorf("scanning file event: %w", err)
		}
		e.Timestamp = parseTimestamp(ts)
		e.Type = ParseEventType(et)
		events = append(events, e)
	}
	return events, rows.Err()
}

// ActivitySummary aggregates file event counts for [since, until).
func (s *SQLite) ActivitySummary(since, until time.Time) (ActivitySummary, error) {
	from := since.UTC().Format(time.RFC3339Nano)
	to := until.UTC().Format(time.RFC3339Nano)

	var summary ActivitySummary

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE event_type = 'modified'),
		        COUNT(*) FILTER (WHERE event_type = 'created')
		 FROM file_events WHERE timestamp >= ? AND timestamp < ?`,
		from, to,
	).Scan(&summary.TotalEvents, &summary.FilesModified, &summary.FilesCreated)
	if err != nil {
		return ActivitySummary{}, fmt.Errorf("counting file events: %w", err)
	}

	// First path segment with the highest event count, best effort.
	var dir sql.NullString
	err = s.db.QueryRow(
		`SELECT SUBSTR(path, 1, INSTR(path || '/', '/')) AS dir
		 FROM file_events
		 WHERE timestamp >= ? AND timestamp < ?
		 GROUP BY dir
		 ORDER BY COUNT(*) DESC
		 LIMIT 1`,
		from, to,
	).Scan(&dir)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return ActivitySummary{}, fmt.Errorf("finding most active directory: %w", err)
	}
	if dir.Valid {
		summary.MostActiveDirectory = dir.String
	}

	return summary, nil
}

// CleanupSnapshots deletes every snapshot except the maxSnapshots most
// recent by timestamp and reports how many rows were removed. Calling it
// again without intervening inserts deletes nothing.
func (s *SQLite) CleanupSnapshots(maxSnapshots int) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY timestamp DESC LIMIT ?
		)`, maxSnapshots)
	if err != nil {
		return 0, fmt.Errorf("cleaning up snapshots: %w", err)
	}
	return res.RowsAffected()
}

// CleanupFileEvents deletes file events older than the given instant.
func (s *SQLite) CleanupFileEvents(olderThan time.Time) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM file_events WHERE timestamp < ?`,
		olderThan.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("cleaning up file events: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var (
		snap                    Snapshot
		ts                      string
		file, dir, branch, note sql.NullString
	)
	if err := row.Scan(&snap.ID, &ts, &file, &dir, &branch, &note); err != nil {
		return Snapshot{}, err
	}
	snap.Timestamp = parseTimestamp(ts)
	snap.ActiveFile = file.String
	snap.ActiveDirectory = dir.String
	snap.GitBranch = branch.String
	snap.Notes = note.String
	return snap, nil
}

// parseTimestamp reads a stored RFC3339 timestamp. A malformed value falls
// back to the current time rather than failing the whole read.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Now().UTC()
	}
	return t.UTC()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
