package crawler

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchGlob implements the spec's glob semantics: '*' matches any character
// run, '?' matches one, matching is case-insensitive, and patterns are
// matched against the path relative to the crawl root (SPEC_FULL.md §4.1).
// A pattern is tried against the full relative path and against the
// file's basename alone (so "*.tmp" excludes files no matter how deep they
// sit) with doublestar's shell-glob matcher, and then against the full
// path with '*' spanning directory separators (so "bin/*" excludes
// everything beneath a top-level bin directory, nested folders included).
func matchGlob(pattern, relPath string) bool {
	pat := strings.ToLower(pattern)
	full := strings.ToLower(filepath.ToSlash(relPath))
	base := strings.ToLower(filepath.Base(full))

	if ok, err := doublestar.Match(pat, full); err == nil && ok {
		return true
	}
	if ok, err := doublestar.Match(pat, base); err == nil && ok {
		return true
	}
	// doublestar's '*' stops at '/', so the full path is also tried with
	// '*' as a plain character run that may span directory separators.
	run := strings.NewReplacer(`\*`, ".*", `\?`, ".").Replace(regexp.QuoteMeta(pat))
	ok, err := regexp.MatchString("^"+run+"$", full)
	return err == nil && ok
}

// matchesAny reports whether relPath matches at least one pattern.
func matchesAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if matchGlob(p, relPath) {
			return true
		}
	}
	return false
}

// shouldInclude applies the spec's include/exclude precedence: exclude
// patterns win over include patterns.
func shouldInclude(includeGlobs, excludeGlobs []string, relPath string) bool {
	if matchesAny(excludeGlobs, relPath) {
		return false
	}
	if len(includeGlobs) == 0 {
		return true
	}
	return matchesAny(includeGlobs, relPath)
}
