package ingestion

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	inlineWhitespace = regexp.MustCompile(`[ \t\f\v\p{Zs}]+`)
	excessiveBlanks  = regexp.MustCompile(`\n\n\n+`)
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CleanText normalizes extracted text while preserving line structure:
// line endings become LF, runs of spaces collapse, bullet indentation is
// kept and blank lines are limited to two in a row.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessiveBlanks.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	content := inlineWhitespace.ReplaceAllString(trimmed, " ")

	// Preserve indentation of nested bullet lists
	if isBulletLine(trimmed) {
		if indent := len(line) - len(trimmed); indent > 0 {
			return strings.Repeat(" ", indent) + content
		}
	}
	return content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}

// decodePlainText strips a UTF-8 byte order mark and replaces invalid byte sequences
func decodePlainText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "\uFFFD")
}
