package domain

import (
	"regexp"
	"strings"
)

// IsExcluded tests a raw link text against the configured exclusion patterns.
// Each pattern is tried as a regular expression first; a pattern that fails to
// compile falls back to a literal substring check. The first matching pattern
// wins; an empty pattern list excludes nothing.
func IsExcluded(raw string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			if strings.Contains(raw, pattern) {
				return true
			}
			continue
		}
		if re.MatchString(raw) {
			return true
		}
	}
	return false
}
