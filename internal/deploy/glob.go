package deploy

import "github.com/bmatcuk/doublestar/v4"

// Patterns are slash-separated doublestar globs matched against paths
// relative to the project directory.

func validGlob(pattern string) bool {
	return pattern != "" && doublestar.ValidatePattern(pattern)
}

// matchAny reports whether name matches at least one pattern. Patterns are
// checked with validGlob before any matching happens.
func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
