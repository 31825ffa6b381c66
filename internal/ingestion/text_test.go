package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Item 1\n  - Nested\n* Item 3"
	result := CleanText(input)

	assert.Contains(t, result, "- Item 1")
	assert.Contains(t, result, "  - Nested")
	assert.Contains(t, result, "* Item 3")
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with \t multiple\u00a0\u00a0spaces"
	result := CleanText(input)

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_StripsIndentation(t *testing.T) {
	assert.Equal(t, "Jane Doe\nLagos", CleanText("    Jane Doe\n\tLagos"))
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Line 1\n\n\n\n\nLine 2"
	assert.Equal(t, "Line 1\n\nLine 2", CleanText(input))
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", CleanText(input))
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Test with émojis 🚀 and spéciàl chàracters"
	assert.Equal(t, input, CleanText(input))
}

func TestDecodePlainText(t *testing.T) {
	assert.Equal(t, "hello", decodePlainText([]byte("\xEF\xBB\xBFhello")))
	assert.Equal(t, "a\uFFFDb", decodePlainText([]byte("a\xffb")))
}
