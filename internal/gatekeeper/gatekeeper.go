// Package gatekeeper derives prioritized nudges and daily summaries from
// recent activity. Every analysis is a pure function of the current store
// contents and configuration: there is no cooldown or suppression state, so
// repeated calls with unchanged data repeat the same nudges.
package gatekeeper

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quietdesk/cockpit/internal/store"
)

// analysisWindow is how many recent snapshots one analysis pass examines.
const analysisWindow = 50

// NudgeType classifies a nudge.
type NudgeType int

const (
	TakeBreak NudgeType = iota
	ContextSwitch
	FocusReminder
	DailyDigestReady
	HighActivity
)

// String returns a human-readable name for the nudge type.
func (t NudgeType) String() string {
	switch t {
	case TakeBreak:
		return "take_break"
	case ContextSwitch:
		return "context_switch"
	case FocusReminder:
		return "focus_reminder"
	case DailyDigestReady:
		return "daily_summary"
	case HighActivity:
		return "high_activity"
	default:
		return "unknown"
	}
}

// Priority orders nudges; higher values sort first.
type Priority int

const (
	Low Priority = iota
	Medium
	High
)

// String returns a human-readable name for the priority.
func (p Priority) String() string {
	switch p {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// Nudge is an ephemeral suggestion. Produced fresh on every analysis call,
// never persisted, consumed immediately by the presentation layer.
type Nudge struct {
	Message   string
	Type      NudgeType
	Priority  Priority
	Timestamp time.Time
}

// Config tunes the analysis heuristics.
type Config struct {
	MaxNudgesPerDay           int
	EnableContextSwitchNudges bool
	MinFocusTimeMinutes       int
	MaxFocusTimeMinutes       int
}

// DefaultConfig returns the stock heuristics configuration.
func DefaultConfig() Config {
	return Config{
		MaxNudgesPerDay:           2,
		EnableContextSwitchNudges: true,
		MinFocusTimeMinutes:       15,
		MaxFocusTimeMinutes:       90,
	}
}

// Clock abstracts time retrieval for deterministic tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Gatekeeper analyzes recent activity. Its only dependency on storage is the
// read-only SnapshotReader interface.
type Gatekeeper struct {
	reader store.SnapshotReader
	config Config
	clock  Clock
}

// New creates a gatekeeper over the given snapshot reader.
func New(reader store.SnapshotReader, config Config) *Gatekeeper {
	return &Gatekeeper{reader: reader, config: config, clock: realClock{}}
}

// NewWithClock creates a gatekeeper with an injected clock for tests.
func NewWithClock(reader store.SnapshotReader, config Config, clock Clock) *Gatekeeper {
	return &Gatekeeper{reader: reader, config: config, clock: clock}
}

// Analyze fetches the most recent snapshots and runs each heuristic check
// in a fixed order: focus time, context switches, burst activity. Any
// subset may fire. Triggered nudges are stable-sorted descending by
// priority (equal priorities keep check order) and truncated to the
// configured daily maximum.
func (g *Gatekeeper) Analyze() []Nudge {
	snapshots, err := g.reader.RecentSnapshots(analysisWindow)
	if err != nil {
		snapshots = nil
	}

	var nudges []Nudge

	if n := g.checkFocusTime(snapshots); n != nil {
		nudges = append(nudges, *n)
	}
	if g.config.EnableContextSwitchNudges {
		if n := g.checkContextSwitches(snapshots); n != nil {
			nudges = append(nudges, *n)
		}
	}
	if n := g.checkActivityLevel(snapshots); n != nil {
		nudges = append(nudges, *n)
	}

	sort.SliceStable(nudges, func(i, j int) bool {
		return nudges[i].Priority > nudges[j].Priority
	})

	if len(nudges) > g.config.MaxNudgesPerDay {
		nudges = nudges[:g.config.MaxNudgesPerDay]
	}

	return nudges
}

// checkFocusTime fires when the window's oldest and newest snapshots share
// an active directory and the oldest is older than the focus limit.
func (g *Gatekeeper) checkFocusTime(snapshots []store.Snapshot) *Nudge {
	if len(snapshots) == 0 {
		return nil
	}

	newest := snapshots[0]
	oldest := snapshots[len(snapshots)-1]
	if newest.ActiveDirectory != oldest.ActiveDirectory {
		return nil
	}

	now := g.clock.Now()
	maxFocus := time.Duration(g.config.MaxFocusTimeMinutes) * time.Minute
	if now.Sub(oldest.Timestamp) <= maxFocus {
		return nil
	}

	return &Nudge{
		Message: fmt.Sprintf(
			"You've been working in the same area for over %d minutes. Consider taking a short break!",
			g.config.MaxFocusTimeMinutes),
		Type:      TakeBreak,
		Priority:  Medium,
		Timestamp: now,
	}
}

// checkContextSwitches fires when the 10 most recent snapshots reference 5
// or more distinct active directories.
func (g *Gatekeeper) checkContextSwitches(snapshots []store.Snapshot) *Nudge {
	if len(snapshots) < 5 {
		return nil
	}

	window := snapshots
	if len(window) > 10 {
		window = window[:10]
	}

	dirs := make(map[string]struct{})
	for _, s := range window {
		if s.ActiveDirectory != "" {
			dirs[s.ActiveDirectory] = struct{}{}
		}
	}

	if len(dirs) < 5 {
		return nil
	}

	return &Nudge{
		Message:   "You've switched context frequently. Consider focusing on one area.",
		Type:      ContextSwitch,
		Priority:  Low,
		Timestamp: g.clock.Now(),
	}
}

// checkActivityLevel fires when at least 20 snapshots span under 30 minutes.
func (g *Gatekeeper) checkActivityLevel(snapshots []store.Snapshot) *Nudge {
	if len(snapshots) < 20 {
		return nil
	}

	span := snapshots[0].Timestamp.Sub(snapshots[19].Timestamp)
	if span >= 30*time.Minute {
		return nil
	}

	return &Nudge{
		Message:   "High activity detected! You're making great progress.",
		Type:      HighActivity,
		Priority:  Low,
		Timestamp: g.clock.Now(),
	}
}

// Summary is a read-only aggregate of one UTC calendar day of file events.
type Summary struct {
	Date                time.Time
	TotalEvents         int64
	FilesModified       int64
	FilesCreated        int64
	MostActiveDirectory string
}

// DailySummary aggregates file-change counts for the UTC calendar day
// containing date. A failing aggregate query yields an all-zero summary
// rather than an error.
func (g *Gatekeeper) DailySummary(date time.Time) Summary {
	startOfDay := date.UTC().Truncate(24 * time.Hour)
	endOfDay := startOfDay.Add(24 * time.Hour)

	activity, err := g.reader.ActivitySummary(startOfDay, endOfDay)
	if err != nil {
		activity = store.ActivitySummary{}
	}

	return Summary{
		Date:                date,
		TotalEvents:         activity.TotalEvents,
		FilesModified:       activity.FilesModified,
		FilesCreated:        activity.FilesCreated,
		MostActiveDirectory: activity.MostActiveDirectory,
	}
}

// Message renders the summary as a single human-readable line.
func (s Summary) Message() string {
	var parts []string

	if s.TotalEvents > 0 {
		parts = append(parts, fmt.Sprintf("%d file events", s.TotalEvents))
	}
	if s.FilesModified > 0 {
		parts = append(parts, fmt.Sprintf("%d files modified", s.FilesModified))
	}
	if s.FilesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d files created", s.FilesCreated))
	}
	if s.MostActiveDirectory != "" {
		parts = append(parts, fmt.Sprintf("Most active: %s", s.MostActiveDirectory))
	}

	if len(parts) == 0 {
		return "No activity recorded today."
	}
	return strings.Join(parts, " | ")
}
