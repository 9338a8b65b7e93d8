// Package snapshot captures the user's working context as persisted
// snapshot rows and enforces the retention cap on the snapshot store.
package snapshot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/quietdesk/cockpit/internal/git"
	"github.com/quietdesk/cockpit/internal/store"
)

// Clock abstracts time retrieval so capture logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// ContextInfo is a resolved working context ready to be captured.
type ContextInfo struct {
	ActiveFile      string
	ActiveDirectory string
	GitBranch       string
}

// ContextFromPath derives a context from a filesystem path. A directory
// becomes the active directory with no active file; a file becomes the
// active file with its parent as the active directory. The git branch is a
// best-effort lookup against the active directory.
func ContextFromPath(path string) ContextInfo {
	ctx := ContextInfo{}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		ctx.ActiveDirectory = path
	default:
		ctx.ActiveDirectory = filepath.Dir(path)
		if err == nil {
			ctx.ActiveFile = path
		}
	}

	if ctx.ActiveDirectory != "" {
		if _, err := os.Stat(ctx.ActiveDirectory); err == nil {
			ctx.GitBranch = git.CurrentBranch(ctx.ActiveDirectory)
		}
	}

	return ctx
}

// Service captures and manages context snapshots.
type Service struct {
	store  store.Store
	clock  Clock
	idgen  IDGenerator
	logger *slog.Logger
}

// NewService creates a snapshot service backed by the given store.
func NewService(st store.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		clock:  RealClock{},
		idgen:  UUIDGenerator{},
		logger: logger,
	}
}

// NewServiceWithDeps allows injecting a clock and ID generator for tests.
func NewServiceWithDeps(st store.Store, clock Clock, idgen IDGenerator, logger *slog.Logger) *Service {
	return &Service{store: st, clock: clock, idgen: idgen, logger: logger}
}

// Capture builds a snapshot from the context, persists it with a single
// write, and returns the persisted value. Store failures propagate to the
// caller unmodified; there is no retry.
func (s *Service) Capture(ctx ContextInfo, note string) (store.Snapshot, error) {
	snap := store.Snapshot{
		ID:              s.idgen.New(),
		Timestamp:       s.clock.Now(),
		ActiveFile:      ctx.ActiveFile,
		ActiveDirectory: ctx.ActiveDirectory,
		GitBranch:       ctx.GitBranch,
		Notes:           note,
	}

	if err := s.store.InsertSnapshot(snap); err != nil {
		return store.Snapshot{}, err
	}

	s.logger.Debug("captured snapshot", "id", snap.ID, "dir", snap.ActiveDirectory)
	return snap, nil
}

// Recent returns the most recent snapshots, newest first.
func (s *Service) Recent(limit int) ([]store.Snapshot, error) {
	return s.store.RecentSnapshots(limit)
}

// Get returns a snapshot by ID, or nil when none exists.
func (s *Service) Get(id string) (*store.Snapshot, error) {
	return s.store.Snapshot(id)
}

// Cleanup trims the snapshot store to the maxSnapshots most recent rows and
// returns how many were removed. A second call with no intervening insert
// removes nothing.
func (s *Service) Cleanup(maxSnapshots int) (int64, error) {
	deleted, err := s.store.CleanupSnapshots(maxSnapshots)
	if err != nil {
		return 0, fmt.Errorf("cleaning up snapshots: %w", err)
	}
	if deleted > 0 {
		s.logger.Info("cleaned up old snapshots", "deleted", deleted)
	}
	return deleted, nil
}
