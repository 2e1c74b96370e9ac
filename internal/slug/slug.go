// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns = regexp.MustCompile(`-+`)
)

// Make lower-cases the title, collapses whitespace runs into single
// hyphens, and strips everything outside [a-z0-9-].
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespace.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithTimestamp appends a monotonically increasing disambiguator so
// colliding titles still yield distinct slugs.
func WithTimestamp(title string) string {
	base := Make(title)
	suffix := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
