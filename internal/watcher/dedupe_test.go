package watcher

import (
	"testing"

	"github.com/quietdesk/cockpit/internal/store"
)

func TestDeduplicateCollapsesPaths(t *testing.T) {
	events := []Event{
		{Path: "/src/a.go", Type: store.EventModified},
		{Path: "/src/b.go", Type: store.EventCreated},
		{Path: "/src/a.go", Type: store.EventModified},
	}

	deduped := Deduplicate(events)
	if len(deduped) != 2 {
		t.Fatalf("expected 2 events, got %d", len(deduped))
	}
}

func TestDeduplicateLastWriteWins(t *testing.T) {
	events := []Event{
		{Path: "/src/a.go", Type: store.EventCreated},
		{Path: "/src/a.go", Type: store.EventModified},
		{Path: "/src/a.go", Type: store.EventDeleted},
	}

	deduped := Deduplicate(events)
	if len(deduped) != 1 {
		t.Fatalf("expected 1 event, got %d", len(deduped))
	}
	if deduped[0].Type != store.EventDeleted {
		t.Errorf("expected the last event to win, got %s", deduped[0].Type)
	}
}

func TestDeduplicateRetainsInputEvents(t *testing.T) {
	events := []Event{
		{Path: "/a", Type: store.EventCreated},
		{Path: "/b", Type: store.EventModified},
		{Path: "/c", Type: store.EventDeleted},
	}

	deduped := Deduplicate(events)
	if len(deduped) != 3 {
		t.Fatalf("expected 3 events, got %d", len(deduped))
	}

	byPath := make(map[string]Event)
	for _, e := range deduped {
		byPath[e.Path] = e
	}
	for _, want := range events {
		got, ok := byPath[want.Path]
		if !ok {
			t.Errorf("missing event for %s", want.Path)
			continue
		}
		if got.Type != want.Type {
			t.Errorf("event for %s changed type: got %s, want %s", want.Path, got.Type, want.Type)
		}
	}
}

func TestDeduplicateEmptyBatch(t *testing.T) {
	if got := Deduplicate(nil); len(got) != 0 {
		t.Errorf("expected empty output, got %d events", len(got))
	}
}
