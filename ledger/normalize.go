package ledger

import "strings"

// Normalize canonicalizes a free-text dimension key so that typo
// variants of the same variant collapse to one key: "10 X 16",
// "10x16" and "10*16" all normalize to "10x16".
//
// The input is trimmed and lower-cased, '*' and 'x'/'X' separators and
// internal runs of spaces become the canonical separator 'x', and any
// remaining spaces are removed. Normalize is pure and total; rejecting
// an empty result is the caller's job.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "*", "x")
	// A spaced separator (" x ", " * ") collapses once the spaces go.
	s = strings.Join(strings.Fields(s), "x")
	s = strings.ReplaceAll(s, " ", "")
	// Runs produced by adjacent separators ("10 x16" -> "10xx16").
	for strings.Contains(s, "xx") {
		s = strings.ReplaceAll(s, "xx", "x")
	}
	return s
}

// Suggest returns the dimensions that start with the normalized form
// of partial. Purely advisory: it never blocks or mutates.
func Suggest(partial string, dimensions []string) []string {
	prefix := Normalize(partial)
	if prefix == "" {
		return nil
	}
	var matches []string
	for _, d := range dimensions {
		if strings.HasPrefix(d, prefix) {
			matches = append(matches, d)
		}
	}
	return matches
}
