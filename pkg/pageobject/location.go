package pageobject

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// Location matching is structured, not regex-based: the trailing path
// segments of the browser location are compared one-to-one against a
// category pattern. Pattern segments are literals, "{subject}" (binds
// the resolved subject) or "{id}" (matches any single record-id-shaped
// segment). The query string and fragment are ignored.
//
// Authors who need looser matching attach their own MatchFunc to a
// definition, e.g. via GlobMatcher; a custom matcher always wins over
// the category pattern.

// matchLocation reports whether the trailing segments of location match
// the pattern with subject bound. Pure function, safe for concurrent
// use.
func matchLocation(pattern, subject, location string) bool {
	want := splitSegments(pattern)
	got := splitSegments(pathOf(location))
	if len(want) == 0 || len(got) < len(want) {
		return false
	}

	got = got[len(got)-len(want):]
	for i, segment := range want {
		switch segment {
		case "{subject}":
			if got[i] != subject {
				return false
			}
		case "{id}":
			if !isRecordID(got[i]) {
				return false
			}
		default:
			if got[i] != segment {
				return false
			}
		}
	}
	return true
}

// pathOf extracts the path portion of a URL-like location, dropping
// query string and fragment. Locations that do not parse as URLs are
// matched as raw paths.
func pathOf(location string) string {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		return u.Path
	}
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		return location[:i]
	}
	return location
}

func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// isRecordID reports whether a path segment looks like a record id:
// 15 to 18 alphanumeric characters.
func isRecordID(segment string) bool {
	if len(segment) < 15 || len(segment) > 18 {
		return false
	}
	for _, r := range segment {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			return false
		}
	}
	return true
}

// recordIDFromLocation scans the location's path segments for a
// record-id-shaped value. Empty string if none is present.
func recordIDFromLocation(location string) string {
	for _, segment := range splitSegments(pathOf(location)) {
		if isRecordID(segment) {
			return segment
		}
	}
	return ""
}

// GlobMatcher builds a MatchFunc from a glob pattern matched against
// the whole location. There is no separator character, so "*" spans
// path segments: "*/custom/{subject}/dashboard" accepts any scheme,
// host and path prefix in front of the trailing segments. The pattern
// may contain "{subject}", substituted with the bound subject per call.
// An invalid pattern returns a matcher that fails every location; the
// error is surfaced when the definition is loaded.
func GlobMatcher(pattern string) MatchFunc {
	// Validate eagerly with a placeholder subject so authors find out
	// at load time rather than mid-test.
	if _, err := glob.Compile(strings.ReplaceAll(pattern, "{subject}", "x")); err != nil {
		return func(subject, location string) bool { return false }
	}

	if !strings.Contains(pattern, "{subject}") {
		compiled := glob.MustCompile(pattern)
		return func(subject, location string) bool {
			return compiled.Match(location)
		}
	}

	return func(subject, location string) bool {
		compiled, err := glob.Compile(strings.ReplaceAll(pattern, "{subject}", subject))
		if err != nil {
			return false
		}
		return compiled.Match(location)
	}
}

// ValidateGlob checks a glob pattern for use with GlobMatcher. Authors
// can call it inside definition sources to turn pattern typos into
// load errors.
func ValidateGlob(pattern string) error {
	if _, err := glob.Compile(strings.ReplaceAll(pattern, "{subject}", "x")); err != nil {
		return fmt.Errorf("invalid location pattern %q: %w", pattern, err)
	}
	return nil
}
