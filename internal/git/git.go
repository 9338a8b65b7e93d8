// Package git provides read-only queries against the git binary. All lookups
// are best-effort: a missing binary, a directory outside any repository, or
// a failing subprocess yields absent data rather than an error.
package git

import (
	"os/exec"
	"strings"
)

// IsRepo checks whether dir is inside a git repository.
func IsRepo(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

// CurrentBranch returns the branch checked out in dir, or "" when it cannot
// be determined. Must not be called with a nonexistent directory.
func CurrentBranch(dir string) string {
	return revParse(dir, "--abbrev-ref", "HEAD")
}

// RootDir returns the repository root containing dir, or "" when dir is not
// inside a repository.
func RootDir(dir string) string {
	return revParse(dir, "--show-toplevel")
}

func revParse(dir string, args ...string) string {
	cmd := exec.Command("git", append([]string{"rev-parse"}, args...)...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
