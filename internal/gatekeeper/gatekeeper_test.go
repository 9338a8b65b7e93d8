package gatekeeper

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/quietdesk/cockpit/internal/store"
)

type fakeReader struct {
	snapshots []store.Snapshot
	activity  store.ActivitySummary
	err       error
}

func (f *fakeReader) RecentSnapshots(limit int) ([]store.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.snapshots) > limit {
		return f.snapshots[:limit], nil
	}
	return f.snapshots, nil
}

func (f *fakeReader) ActivitySummary(since, until time.Time) (store.ActivitySummary, error) {
	if f.err != nil {
		return store.ActivitySummary{}, f.err
	}
	return f.activity, nil
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

// sameDirSnapshots builds n snapshots in the same directory, newest first,
// the oldest at now minus span.
func sameDirSnapshots(now time.Time, n int, span time.Duration) []store.Snapshot {
	snapshots := make([]store.Snapshot, n)
	for i := range snapshots {
		offset := span * time.Duration(i) / time.Duration(n-1)
		snapshots[i] = store.Snapshot{
			ID:              fmt.Sprintf("snap-%d", i),
			Timestamp:       now.Add(-offset),
			ActiveDirectory: "/home/user/project",
		}
	}
	return snapshots
}

func TestFocusTimeNudgeFires(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	reader := &fakeReader{snapshots: sameDirSnapshots(now, 15, 91*time.Minute)}

	config := DefaultConfig()
	config.MaxNudgesPerDay = 10
	g := NewWithClock(reader, config, fakeClock{now})

	nudges := g.Analyze()
	if len(nudges) != 1 {
		t.Fatalf("expected 1 nudge, got %d", len(nudges))
	}
	if nudges[0].Type != TakeBreak {
		t.Errorf("expected take_break nudge, got %s", nudges[0].Type)
	}
	if nudges[0].Priority != Medium {
		t.Errorf("expected medium priority, got %s", nudges[0].Priority)
	}
	if !strings.Contains(nudges[0].Message, "90 minutes") {
		t.Errorf("expected message to mention the focus limit, got %q", nudges[0].Message)
	}
}

func TestFocusTimeNudgeRespectsThreshold(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	reader := &fakeReader{snapshots: sameDirSnapshots(now, 15, 10*time.Minute)}

	g := NewWithClock(reader, DefaultConfig(), fakeClock{now})
	if nudges := g.Analyze(); len(nudges) != 0 {
		t.Errorf("expected no nudges under the focus limit, got %d", len(nudges))
	}
}

func TestFocusTimeNudgeRequiresSameDirectory(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	snapshots := sameDirSnapshots(now, 15, 120*time.Minute)
	snapshots[len(snapshots)-1].ActiveDirectory = "/somewhere/else"
	reader := &fakeReader{snapshots: snapshots}

	g := NewWithClock(reader, DefaultConfig(), fakeClock{now})
	for _, n := range g.Analyze() {
		if n.Type == TakeBreak {
			t.Error("expected no focus nudge when directories differ")
		}
	}
}

func TestContextSwitchNudge(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	var snapshots []store.Snapshot
	for i := 0; i < 6; i++ {
		snapshots = append(snapshots, store.Snapshot{
			ID:              fmt.Sprintf("snap-%d", i),
			Timestamp:       now.Add(-time.Duration(i) * time.Minute),
			ActiveDirectory: fmt.Sprintf("/project/%d", i),
		})
	}
	reader := &fakeReader{snapshots: snapshots}

	config := DefaultConfig()
	g := NewWithClock(reader, config, fakeClock{now})

	nudges := g.Analyze()
	if len(nudges) != 1 {
		t.Fatalf("expected 1 nudge, got %d", len(nudges))
	}
	if nudges[0].Type != ContextSwitch || nudges[0].Priority != Low {
		t.Errorf("expected low-priority context_switch, got %s/%s", nudges[0].Type, nudges[0].Priority)
	}
}

func TestContextSwitchNudgeDisabled(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	var snapshots []store.Snapshot
	for i := 0; i < 6; i++ {
		snapshots = append(snapshots, store.Snapshot{
			Timestamp:       now.Add(-time.Duration(i) * time.Minute),
			ActiveDirectory: fmt.Sprintf("/project/%d", i),
		})
	}
	reader := &fakeReader{snapshots: snapshots}

	config := DefaultConfig()
	config.EnableContextSwitchNudges = false
	g := NewWithClock(reader, config, fakeClock{now})

	if nudges := g.Analyze(); len(nudges) != 0 {
		t.Errorf("expected no nudges with switch detection disabled, got %d", len(nudges))
	}
}

func TestContextSwitchIgnoresEmptyDirectories(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	var snapshots []store.Snapshot
	for i := 0; i < 10; i++ {
		dir := ""
		if i < 4 {
			dir = fmt.Sprintf("/project/%d", i)
		}
		snapshots = append(snapshots, store.Snapshot{
			Timestamp:       now.Add(-time.Duration(i) * time.Minute),
			ActiveDirectory: dir,
		})
	}
	reader := &fakeReader{snapshots: snapshots}

	g := NewWithClock(reader, DefaultConfig(), fakeClock{now})
	if nudges := g.Analyze(); len(nudges) != 0 {
		t.Errorf("expected no nudge with only 4 distinct directories, got %d", len(nudges))
	}
}

func TestHighActivityNudge(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	var snapshots []store.Snapshot
	for i := 0; i < 25; i++ {
		snapshots = append(snapshots, store.Snapshot{
			Timestamp:       now.Add(-time.Duration(i) * time.Minute),
			ActiveDirectory: "/project",
		})
	}
	reader := &fakeReader{snapshots: snapshots}

	config := DefaultConfig()
	config.MaxFocusTimeMinutes = 600 // keep the focus check quiet
	g := NewWithClock(reader, config, fakeClock{now})

	nudges := g.Analyze()
	if len(nudges) != 1 {
		t.Fatalf("expected 1 nudge, got %d", len(nudges))
	}
	if nudges[0].Type != HighActivity {
		t.Errorf("expected high_activity nudge, got %s", nudges[0].Type)
	}
}

func TestHighActivityRequiresTwentySnapshots(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	var snapshots []store.Snapshot
	for i := 0; i < 19; i++ {
		snapshots = append(snapshots, store.Snapshot{
			Timestamp:       now.Add(-time.Duration(i) * time.Second),
			ActiveDirectory: "/project",
		})
	}
	reader := &fakeReader{snapshots: snapshots}

	config := DefaultConfig()
	config.MaxFocusTimeMinutes = 600
	g := NewWithClock(reader, config, fakeClock{now})

	if nudges := g.Analyze(); len(nudges) != 0 {
		t.Errorf("expected no burst nudge under 20 snapshots, got %d", len(nudges))
	}
}

func TestNudgesSortedByPriority(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	// 25 snapshots over 20 minutes in 6 directories, oldest 2h back in the
	// newest snapshot's directory: all three checks fire.
	var snapshots []store.Snapshot
	for i := 0; i < 24; i++ {
		snapshots = append(snapshots, store.Snapshot{
			Timestamp:       now.Add(-time.Duration(i) * 50 * time.Second),
			ActiveDirectory: fmt.Sprintf("/project/%d", i%6),
		})
	}
	snapshots = append(snapshots, store.Snapshot{
		Timestamp:       now.Add(-2 * time.Hour),
		ActiveDirectory: snapshots[0].ActiveDirectory,
	})
	reader := &fakeReader{snapshots: snapshots}

	config := DefaultConfig()
	config.MaxNudgesPerDay = 10
	g := NewWithClock(reader, config, fakeClock{now})

	nudges := g.Analyze()
	if len(nudges) != 3 {
		t.Fatalf("expected 3 nudges, got %d", len(nudges))
	}
	if nudges[0].Priority != Medium {
		t.Errorf("expected the medium-priority nudge first, got %s", nudges[0].Priority)
	}
	for i := 1; i < len(nudges); i++ {
		if nudges[i].Priority > nudges[i-1].Priority {
			t.Errorf("nudges out of priority order at %d", i)
		}
	}
	// Equal priorities keep check order: context switch before burst.
	if nudges[1].Type != ContextSwitch || nudges[2].Type != HighActivity {
		t.Errorf("expected stable order among equal priorities, got %s then %s",
			nudges[1].Type, nudges[2].Type)
	}
}

func TestNudgesTruncatedToDailyMax(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	var snapshots []store.Snapshot
	for i := 0; i < 24; i++ {
		snapshots = append(snapshots, store.Snapshot{
			Timestamp:       now.Add(-time.Duration(i) * 50 * time.Second),
			ActiveDirectory: fmt.Sprintf("/project/%d", i%6),
		})
	}
	snapshots = append(snapshots, store.Snapshot{
		Timestamp:       now.Add(-2 * time.Hour),
		ActiveDirectory: snapshots[0].ActiveDirectory,
	})
	reader := &fakeReader{snapshots: snapshots}

	config := DefaultConfig()
	config.MaxNudgesPerDay = 1
	g := NewWithClock(reader, config, fakeClock{now})

	nudges := g.Analyze()
	if len(nudges) != 1 {
		t.Fatalf("expected truncation to 1 nudge, got %d", len(nudges))
	}
	if nudges[0].Priority != Medium {
		t.Errorf("expected the highest-priority nudge to survive, got %s", nudges[0].Priority)
	}
}

func TestAnalyzeEmptyStore(t *testing.T) {
	g := New(&fakeReader{}, DefaultConfig())
	if nudges := g.Analyze(); len(nudges) != 0 {
		t.Errorf("expected no nudges from an empty store, got %d", len(nudges))
	}
}

func TestAnalyzeReadErrorYieldsNoNudges(t *testing.T) {
	g := New(&fakeReader{err: errors.New("database locked")}, DefaultConfig())
	if nudges := g.Analyze(); len(nudges) != 0 {
		t.Errorf("expected no nudges on read error, got %d", len(nudges))
	}
}

func TestDailySummary(t *testing.T) {
	reader := &fakeReader{activity: store.ActivitySummary{
		TotalEvents:         12,
		FilesModified:       8,
		FilesCreated:        2,
		MostActiveDirectory: "src/",
	}}
	g := New(reader, DefaultConfig())

	summary := g.DailySummary(time.Date(2026, 3, 1, 16, 30, 0, 0, time.UTC))
	if summary.TotalEvents != 12 || summary.FilesModified != 8 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	msg := summary.Message()
	for _, want := range []string{"12 file events", "8 files modified", "2 files created", "Most active: src/"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q, got %q", want, msg)
		}
	}
}

func TestDailySummaryErrorYieldsZero(t *testing.T) {
	g := New(&fakeReader{err: errors.New("disk gone")}, DefaultConfig())
	summary := g.DailySummary(time.Now())
	if summary.TotalEvents != 0 {
		t.Errorf("expected zero summary on error, got %+v", summary)
	}
	if got := summary.Message(); got != "No activity recorded today." {
		t.Errorf("unexpected empty-summary message: %q", got)
	}
}
