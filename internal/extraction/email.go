package extraction

import (
	"regexp"
	"strings"
)

// maxEmailLength is the longest address the applicants table can hold
const maxEmailLength = 255

var emailPattern = regexp.MustCompile(
	`\b[A-Za-z0-9](?:[A-Za-z0-9._-]{0,63}[A-Za-z0-9])?@([A-Za-z0-9](?:[A-Za-z0-9.-]{0,253}[A-Za-z0-9])?\.[A-Za-z]{2,})\b`)

// ExtractEmail finds the first non-placeholder email using the default vocabulary
func ExtractEmail(text string) *string {
	return DefaultVocabulary().ExtractEmail(text)
}

// ExtractEmail returns the first email address in text whose domain is not a placeholder.
// Addresses longer than maxEmailLength are skipped.
func (v *Vocabulary) ExtractEmail(text string) *string {
	for _, m := range emailPattern.FindAllStringSubmatch(text, -1) {
		if len(m[0]) > maxEmailLength || v.isPlaceholderDomain(m[1]) {
			continue
		}
		return ptr(strings.TrimSpace(m[0]))
	}
	return nil
}
