package watcher

import "testing"

func TestShouldIgnoreGit(t *testing.T) {
	filter := NewIgnoreFilter([]string{`\.git`})

	if !filter.ShouldIgnore("/repo/.git/objects/x") {
		t.Error("expected .git objects path to be ignored")
	}
	if !filter.ShouldIgnore("/repo/.gitignore") {
		t.Error("expected .gitignore to be ignored")
	}
	if filter.ShouldIgnore("/repo/src/main.rs") {
		t.Error("expected source file not to be ignored")
	}
}

func TestShouldIgnoreSubstring(t *testing.T) {
	filter := NewIgnoreFilter([]string{"target"})

	if !filter.ShouldIgnore("/project/target/debug/main") {
		t.Error("expected target path to be ignored")
	}
	if filter.ShouldIgnore("/project/src/main.go") {
		t.Error("expected source file not to be ignored")
	}
}

func TestShouldIgnoreMultiplePatterns(t *testing.T) {
	filter := NewIgnoreFilter([]string{`\.git`, "node_modules"})

	if !filter.ShouldIgnore("/app/node_modules/pkg/index.js") {
		t.Error("expected node_modules path to be ignored")
	}
	if !filter.ShouldIgnore("/app/.git/HEAD") {
		t.Error("expected .git path to be ignored")
	}
	if filter.ShouldIgnore("/app/src/index.js") {
		t.Error("expected source file not to be ignored")
	}
}

func TestInvalidPatternsSilentlyDropped(t *testing.T) {
	filter := NewIgnoreFilter([]string{"[invalid", "valid"})

	if len(filter.patterns) != 1 {
		t.Fatalf("expected 1 compiled pattern, got %d", len(filter.patterns))
	}
	if !filter.ShouldIgnore("/path/valid/file") {
		t.Error("expected valid pattern to still match")
	}
}

func TestEmptyFilterIgnoresNothing(t *testing.T) {
	filter := NewIgnoreFilter(nil)

	if filter.ShouldIgnore("/any/path") {
		t.Error("expected empty filter to ignore nothing")
	}
}
