// Package testutil provides shared helpers for package tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/quietdesk/cockpit/internal/store"
)

// MustOpenStore returns an in-memory store, closed when the test ends.
func MustOpenStore(t *testing.T) *store.SQLite {
	t.Helper()

	st, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TempGitRepo is a temporary git repository for testing branch detection.
type TempGitRepo struct {
	Path string
	T    *testing.T
}

// NewTempGitRepo creates a git repository with one initial commit in a
// temporary directory. Tests depending on it skip when git is unavailable.
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir := t.TempDir()
	repo := &TempGitRepo{Path: dir, T: t}

	repo.git("init", "-b", "main")
	repo.git("config", "user.name", "Test User")
	repo.git("config", "user.email", "test@example.com")

	repo.CreateFile("README.md", "# Test Repository\n")
	repo.git("add", ".")
	repo.git("commit", "-m", "Initial commit")

	return repo
}

// CreateFile writes a file inside the repository.
func (r *TempGitRepo) CreateFile(name, content string) string {
	r.T.Helper()

	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
	return path
}

// Checkout creates and switches to a branch.
func (r *TempGitRepo) Checkout(branch string) {
	r.T.Helper()
	r.git("checkout", "-b", branch)
}

func (r *TempGitRepo) git(args ...string) {
	r.T.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	if out, err := cmd.CombinedOutput(); err != nil {
		r.T.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}
