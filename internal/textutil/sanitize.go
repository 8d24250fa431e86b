package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// pathSegmentReplacer removes characters that are illegal in filesystem path
// segments. Removal (not substitution) keeps names stable across reruns: a
// title that sanitized to X yesterday sanitizes to X today.
var pathSegmentReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	":", "",
	"\"", "",
	"/", "",
	"\\", "",
	"|", "",
	"?", "",
	"*", "",
)

// SanitizeName strips filesystem-unsafe characters from a path segment.
// The operation is idempotent. Distinct inputs may collapse to the same
// output; callers own that collision behavior.
func SanitizeName(name string) string {
	return pathSegmentReplacer.Replace(norm.NFC.String(name))
}

// TruncateRunes shortens s to at most n runes without splitting a multi-byte
// sequence.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
