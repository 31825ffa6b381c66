package extraction

import "strings"

// nonEmptyLines splits text into trimmed, non-empty lines
func nonEmptyLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WordCount counts whitespace-separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ptr returns a pointer to v
func ptr[T any](v T) *T {
	return &v
}
