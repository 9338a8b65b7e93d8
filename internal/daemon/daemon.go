// Package daemon runs the watch loop: one polling cycle waits for a batch
// of change events, deduplicates it, records file events, captures context
// snapshots, and enforces snapshot retention.
package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/quietdesk/cockpit/internal/snapshot"
	"github.com/quietdesk/cockpit/internal/store"
	"github.com/quietdesk/cockpit/internal/watcher"
)

// DefaultPollTimeout is how long one cycle blocks waiting for the first
// event of a batch.
const DefaultPollTimeout = 5 * time.Second

// EventSource supplies batches of change events. Satisfied by
// *watcher.Notifier.
type EventSource interface {
	WaitForEvents(timeout time.Duration) []watcher.Event
}

// Loop is the single consumer of the event queue. It is the only writer of
// the store; processing within a batch is strictly sequential.
type Loop struct {
	source       EventSource
	snapshots    *snapshot.Service
	store        store.Store
	clock        snapshot.Clock
	idgen        snapshot.IDGenerator
	maxSnapshots int
	pollTimeout  time.Duration
	logger       *slog.Logger
}

// New creates a watch loop.
func New(source EventSource, snapshots *snapshot.Service, st store.Store, maxSnapshots int, logger *slog.Logger) *Loop {
	return &Loop{
		source:       source,
		snapshots:    snapshots,
		store:        st,
		clock:        snapshot.RealClock{},
		idgen:        snapshot.UUIDGenerator{},
		maxSnapshots: maxSnapshots,
		pollTimeout:  DefaultPollTimeout,
		logger:       logger,
	}
}

// SetPollTimeout overrides the per-cycle wait, mainly for tests.
func (l *Loop) SetPollTimeout(d time.Duration) { l.pollTimeout = d }

// Run executes polling cycles until the context is cancelled. Shutdown is
// cooperative: a cancellation observed mid-cycle lets the current batch
// finish, never abandoning it. Store failures are logged and the loop
// proceeds to the next cycle; the next iteration is the de facto retry for
// anything transient.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		events := l.source.WaitForEvents(l.pollTimeout)
		l.RunCycle(events)
	}
}

// RunCycle processes one batch and then enforces retention.
func (l *Loop) RunCycle(events []watcher.Event) {
	for _, event := range watcher.Deduplicate(events) {
		l.record(event)
	}

	if _, err := l.snapshots.Cleanup(l.maxSnapshots); err != nil {
		l.logger.Warn("cleanup failed", "err", err)
	}
}

// record persists one file event and the context snapshot it implies.
func (l *Loop) record(event watcher.Event) {
	err := l.store.InsertFileEvent(store.FileEvent{
		ID:        l.idgen.New(),
		Timestamp: l.clock.Now(),
		Path:      event.Path,
		Type:      event.Type,
	})
	if err != nil {
		l.logger.Error("failed to record file event", "path", event.Path, "err", err)
	}

	ctx := snapshot.ContextFromPath(event.Path)
	if _, err := l.snapshots.Capture(ctx, ""); err != nil {
		l.logger.Error("failed to capture snapshot", "path", event.Path, "err", err)
		return
	}
	l.logger.Debug("captured", "path", event.Path, "type", string(event.Type))
}
