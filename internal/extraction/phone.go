package extraction

import (
	"regexp"
	"strings"
)

const (
	phoneMinDigits = 10
	phoneMaxDigits = 15
)

// tried in order; the first pattern with a valid candidate wins
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?\d{1,4}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,4}`),
	regexp.MustCompile(`\(?\d{3,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}`),
}

// ExtractPhone returns the first phone-like match with 10 to 15 digits
func ExtractPhone(text string) *string {
	for _, pattern := range phonePatterns {
		for _, candidate := range pattern.FindAllString(text, -1) {
			n := digitCount(candidate)
			if n >= phoneMinDigits && n <= phoneMaxDigits {
				return ptr(strings.TrimSpace(candidate))
			}
		}
	}
	return nil
}

// PhoneDigits strips every non-digit from s
func PhoneDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func digitCount(s string) int {
	return len(PhoneDigits(s))
}
