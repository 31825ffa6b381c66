package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	nameScanLines     = 15
	nameMaxLineLength = 60
	nameMinLength     = 5
	nameMaxLength     = 50
)

const nameWord = `[A-Z][a-z]+(?:['\-][A-Z][a-z]+)?`

var (
	// two or three capitalized words or initials; the third and fourth initials need a period
	namePattern = regexp.MustCompile(
		`^(` + nameWord + `|[A-Z]\.?)\s+(` + nameWord + `|[A-Z]\.?)` +
			`(?:\s+(` + nameWord + `|[A-Z]\.))?(?:\s+(` + nameWord + `|[A-Z]\.))?$`)

	bulletPrefix = regexp.MustCompile(`^[>\-\*\d•\[\(]`)

	// the label and its value must share a line
	nameLabelPattern = regexp.MustCompile(
		`(?i:name|full[ \t]+name|applicant)[:\t ]+([A-Z][a-z]+(?:['\- \t][A-Z][a-z]+){1,3})`)
)

// ExtractName finds the applicant's name using the default vocabulary
func ExtractName(text string) *string {
	return DefaultVocabulary().ExtractName(text)
}

// ExtractName returns the first header line that looks like a personal name,
// falling back to a labelled "Name:" field anywhere in the text.
func (v *Vocabulary) ExtractName(text string) *string {
	lines := nonEmptyLines(text)
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}

	for _, line := range lines {
		if v.isNameCandidate(line) {
			return ptr(line)
		}
	}

	if m := nameLabelPattern.FindStringSubmatch(text); m != nil {
		return ptr(strings.TrimSpace(m[1]))
	}

	return nil
}

func (v *Vocabulary) isNameCandidate(line string) bool {
	length := utf8.RuneCountInString(line)
	if length > nameMaxLineLength {
		return false
	}
	if bulletPrefix.MatchString(line) {
		return false
	}
	if v.isSkipLine(strings.ToLower(line)) {
		return false
	}
	if !namePattern.MatchString(line) {
		return false
	}
	if line == strings.ToUpper(line) {
		return false
	}
	return length >= nameMinLength && length <= nameMaxLength
}
