package captions

import (
	"fmt"
	"strings"
)

// Format renders caption entries as one "[MM:SS] text" line each, in input
// order. Start times truncate to whole seconds; entries are neither merged
// nor deduplicated.
func Format(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		total := int(entry.Start)
		minutes := total / 60
		seconds := total % 60
		lines = append(lines, fmt.Sprintf("[%02d:%02d] %s", minutes, seconds, strings.TrimSpace(entry.Text)))
	}
	return strings.Join(lines, "\n")
}
