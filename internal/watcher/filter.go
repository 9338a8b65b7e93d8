package watcher

import "regexp"

// IgnoreFilter decides whether a path should be dropped from consideration.
// Patterns are regular expressions matched anywhere in the path string, not
// globs: `\.git` ignores `/repo/.git/objects/x`.
type IgnoreFilter struct {
	patterns []*regexp.Regexp
}

// NewIgnoreFilter compiles the given patterns. Patterns that fail to compile
// are silently dropped from the effective set; startup configuration
// validation is where bad patterns are rejected loudly.
func NewIgnoreFilter(patterns []string) *IgnoreFilter {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		compiled = append(compiled, re)
	}
	return &IgnoreFilter{patterns: compiled}
}

// ShouldIgnore reports whether the path matches at least one pattern.
func (f *IgnoreFilter) ShouldIgnore(path string) bool {
	for _, re := range f.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
