package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()

	st, err := OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testSnapshot(ts time.Time) Snapshot {
	return Snapshot{
		ID:        uuid.New().String(),
		Timestamp: ts,
	}
}

func TestInsertAndGetSnapshot(t *testing.T) {
	st := openTestStore(t)

	snap := Snapshot{
		ID:              uuid.New().String(),
		Timestamp:       time.Now().UTC(),
		ActiveFile:      "/path/to/file.go",
		ActiveDirectory: "/path/to",
		GitBranch:       "main",
		Notes:           "Working on tests",
	}
	if err := st.InsertSnapshot(snap); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := st.Snapshot(snap.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if got.ActiveFile != snap.ActiveFile || got.GitBranch != "main" || got.Notes != snap.Notes {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestGetMissingSnapshot(t *testing.T) {
	st := openTestStore(t)

	got, err := st.Snapshot("nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing snapshot, got %+v", got)
	}
}

func TestRecentSnapshotsOrderAndLimit(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		snap := testSnapshot(base.Add(time.Duration(i) * time.Minute))
		snap.Notes = snap.Timestamp.Format(time.RFC3339)
		if err := st.InsertSnapshot(snap); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	recent, err := st.RecentSnapshots(3)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(recent))
	}
	if !recent[0].Timestamp.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("expected newest first, got %v", recent[0].Timestamp)
	}
	if recent[0].Timestamp.Before(recent[1].Timestamp) || recent[1].Timestamp.Before(recent[2].Timestamp) {
		t.Error("expected descending timestamp order")
	}
}

func TestInsertAndQueryFileEvents(t *testing.T) {
	st := openTestStore(t)

	now := time.Now().UTC()
	event := FileEvent{
		ID:        uuid.New().String(),
		Timestamp: now,
		Path:      "/src/main.go",
		Type:      EventModified,
	}
	if err := st.InsertFileEvent(event); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	events, err := st.FileEvents(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Path != "/src/main.go" || events[0].Type != EventModified {
		t.Errorf("round-trip mismatch: %+v", events[0])
	}
}

func TestFileEventsRangeIsHalfOpen(t *testing.T) {
	st := openTestStore(t)

	boundary := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	event := FileEvent{
		ID:        uuid.New().String(),
		Timestamp: boundary,
		Path:      "/src/a.go",
		Type:      EventCreated,
	}
	if err := st.InsertFileEvent(event); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	in, err := st.FileEvents(boundary, boundary.Add(time.Hour))
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(in) != 1 {
		t.Errorf("expected event at inclusive lower bound, got %d", len(in))
	}

	out, err := st.FileEvents(boundary.Add(-time.Hour), boundary)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no event at exclusive upper bound, got %d", len(out))
	}
}

func TestActivitySummary(t *testing.T) {
	st := openTestStore(t)

	now := time.Now().UTC()
	inserts := []struct {
		path string
		typ  EventType
	}{
		{"src/a.go", EventModified},
		{"src/b.go", EventModified},
		{"src/c.go", EventCreated},
		{"test/d.go", EventDeleted},
	}
	for _, in := range inserts {
		err := st.InsertFileEvent(FileEvent{
			ID:        uuid.New().String(),
			Timestamp: now,
			Path:      in.path,
			Type:      in.typ,
		})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	summary, err := st.ActivitySummary(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalEvents != 4 {
		t.Errorf("expected 4 total events, got %d", summary.TotalEvents)
	}
	if summary.FilesModified != 2 {
		t.Errorf("expected 2 modified, got %d", summary.FilesModified)
	}
	if summary.FilesCreated != 1 {
		t.Errorf("expected 1 created, got %d", summary.FilesCreated)
	}
	if summary.MostActiveDirectory != "src/" {
		t.Errorf("expected src/ as most active, got %q", summary.MostActiveDirectory)
	}
}

func TestActivitySummaryEmpty(t *testing.T) {
	st := openTestStore(t)

	now := time.Now().UTC()
	summary, err := st.ActivitySummary(now.Add(-time.Hour), now)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalEvents != 0 || summary.MostActiveDirectory != "" {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestCleanupSnapshots(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		if err := st.InsertSnapshot(testSnapshot(base.Add(time.Duration(i) * time.Minute))); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	deleted, err := st.CleanupSnapshots(5)
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if deleted != 5 {
		t.Errorf("expected 5 deleted, got %d", deleted)
	}

	remaining, err := st.RecentSnapshots(100)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(remaining) != 5 {
		t.Fatalf("expected 5 remaining, got %d", len(remaining))
	}
	// The oldest five should be gone.
	for _, snap := range remaining {
		if snap.Timestamp.Before(base.Add(5 * time.Minute)) {
			t.Errorf("old snapshot survived cleanup: %v", snap.Timestamp)
		}
	}
}

func TestCleanupSnapshotsIdempotent(t *testing.T) {
	st := openTestStore(t)

	for i := 0; i < 10; i++ {
		if err := st.InsertSnapshot(testSnapshot(time.Now().UTC().Add(time.Duration(i) * time.Second))); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	if _, err := st.CleanupSnapshots(5); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	deleted, err := st.CleanupSnapshots(5)
	if err != nil {
		t.Fatalf("second cleanup failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected idempotent cleanup to delete 0, got %d", deleted)
	}
}

func TestCleanupSnapshotsUnderCap(t *testing.T) {
	st := openTestStore(t)

	for i := 0; i < 3; i++ {
		if err := st.InsertSnapshot(testSnapshot(time.Now().UTC())); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	deleted, err := st.CleanupSnapshots(5)
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted below the cap, got %d", deleted)
	}
}

func TestCleanupFileEvents(t *testing.T) {
	st := openTestStore(t)

	now := time.Now().UTC()
	old := FileEvent{ID: uuid.New().String(), Timestamp: now.Add(-48 * time.Hour), Path: "/old", Type: EventModified}
	fresh := FileEvent{ID: uuid.New().String(), Timestamp: now, Path: "/fresh", Type: EventModified}
	for _, e := range []FileEvent{old, fresh} {
		if err := st.InsertFileEvent(e); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	deleted, err := st.CleanupFileEvents(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}
}

func TestParseEventType(t *testing.T) {
	if ParseEventType("created") != EventCreated {
		t.Error("expected created")
	}
	if ParseEventType("renamed") != EventRenamed {
		t.Error("expected renamed to stay part of the stored vocabulary")
	}
	if ParseEventType("bogus") != EventModified {
		t.Error("expected unknown types to default to modified")
	}
}
