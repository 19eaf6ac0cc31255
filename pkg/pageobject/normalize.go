package pageobject

import "strings"

// NormalizeKeyword converts a keyword name to canonical form: lowercase,
// with runs of whitespace collapsed to single underscores. "Go To Page",
// "go_to_page" and "GO  TO  PAGE" all normalize to "go_to_page".
//
// The loader and the dispatcher share this function, so a keyword is
// reachable under any spelling the test author is likely to use.
func NormalizeKeyword(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// normalizeCategory canonicalizes a page category for registry and
// fallback lookup. Categories are matched case-insensitively; subjects
// are not (they appear verbatim in URLs).
func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
