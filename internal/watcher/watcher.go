// Package watcher turns OS-level filesystem notifications into a filtered,
// deduplicated stream of change events consumed by the watch loop.
package watcher

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quietdesk/cockpit/internal/store"
)

// eventBuffer bounds the delivery queue between the fsnotify goroutine and
// the single consumer.
const eventBuffer = 1024

// Event is a transient notification that a filesystem path changed. It
// exists only within one pipeline pass and is never persisted directly.
type Event struct {
	Path string
	Type store.EventType
}

// Notifier watches a set of root directories recursively and delivers
// filtered change events into a single-consumer queue.
type Notifier struct {
	fsw    *fsnotify.Watcher
	filter *IgnoreFilter
	logger *slog.Logger
	events chan Event
	done   chan struct{}
}

// NewNotifier subscribes recursively to each root that exists. Roots that do
// not exist are skipped with a warning. Invalid ignore patterns have already
// been dropped by the filter.
func NewNotifier(roots []string, filter *IgnoreFilter, logger *slog.Logger) (*Notifier, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}

	n := &Notifier{
		fsw:    fsw,
		filter: filter,
		logger: logger,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			logger.Warn("directory does not exist, skipping", "dir", root)
			continue
		}
		if err := n.watchRecursive(root); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching directory %s: %w", root, err)
		}
		logger.Info("watching directory", "dir", root)
	}

	go n.run()

	return n, nil
}

// watchRecursive adds root and every non-ignored subdirectory to the
// watch set. Unreadable entries are skipped.
func (n *Notifier) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if n.filter.ShouldIgnore(path) {
			return filepath.SkipDir
		}
		return n.fsw.Add(path)
	})
}

// run consumes raw fsnotify events until the notifier is closed. A single
// malformed event or OS-level error never halts the stream.
func (n *Notifier) run() {
	for {
		select {
		case <-n.done:
			return
		case err, ok := <-n.fsw.Errors:
			if !ok {
				return
			}
			n.logger.Warn("watch error", "err", err)
		case raw, ok := <-n.fsw.Events:
			if !ok {
				return
			}
			n.handle(raw)
		}
	}
}

func (n *Notifier) handle(raw fsnotify.Event) {
	if n.filter.ShouldIgnore(raw.Name) {
		return
	}

	// Recursive watching has to chase newly created directories.
	if raw.Has(fsnotify.Create) {
		if info, err := os.Stat(raw.Name); err == nil && info.IsDir() {
			if err := n.watchRecursive(raw.Name); err != nil {
				n.logger.Warn("failed to watch new directory", "dir", raw.Name, "err", err)
			}
		}
	}

	eventType, ok := mapOperation(raw.Op)
	if !ok {
		return
	}

	select {
	case n.events <- Event{Path: raw.Name, Type: eventType}:
	case <-n.done:
	}
}

// mapOperation maps an fsnotify operation to an event type. Renames and
// permission changes are dropped: the pipeline never emits a renamed event
// even though the stored vocabulary defines one.
func mapOperation(op fsnotify.Op) (store.EventType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return store.EventCreated, true
	case op.Has(fsnotify.Write):
		return store.EventModified, true
	case op.Has(fsnotify.Remove):
		return store.EventDeleted, true
	default:
		return "", false
	}
}

// Poll returns any already-queued events without blocking.
func (n *Notifier) Poll() []Event {
	var events []Event
	for {
		select {
		case e := <-n.events:
			events = append(events, e)
		default:
			return events
		}
	}
}

// WaitForEvents blocks up to timeout for the first event, then drains any
// further already-queued events without blocking. A burst spanning two calls
// is split into two batches.
func (n *Notifier) WaitForEvents(timeout time.Duration) []Event {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case e := <-n.events:
		return append([]Event{e}, n.Poll()...)
	case <-timer.C:
		return nil
	case <-n.done:
		return nil
	}
}

// Close stops the notifier. Safe to call once.
func (n *Notifier) Close() error {
	close(n.done)
	return n.fsw.Close()
}
