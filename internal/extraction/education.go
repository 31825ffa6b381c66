package extraction

import (
	"regexp"
	"strings"
)

const (
	fieldMinLength = 3
	fieldMaxLength = 50
)

// field of study runs up to from/at/comma/newline/end
const fieldCapture = `\s*[,\-:]?\s*([A-Za-z\s&]+?)(?:\s+from|\s+at|\s*,|\s*\n|$)`

var (
	degreePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Bachelor(?:'s)?|B\.?Sc|BSc|BA|B\.?A)(?:\.|\b)` + fieldCapture),
		regexp.MustCompile(`(?i)\b(Master(?:'s)?|M\.?Sc|MSc|MA|M\.?A)(?:\.|\b)` + fieldCapture),
		regexp.MustCompile(`(?i)\b(PhD|Ph\.?D|Doctorate)(?:\.|\b)` + fieldCapture),
		regexp.MustCompile(`(?i)\b(HND|Diploma)(?:\.|\b)` + fieldCapture),
	}

	fieldTrailer = regexp.MustCompile(`(?i)\s+(from|at|in|of|with|and|the|university|college|institute)\b.*$`)
	fieldLetters = regexp.MustCompile(`^[A-Za-z\s&]+$`)

	degreeKeyword = regexp.MustCompile(
		`(?i)\b(Bachelor(?:'s)?|B\.?Sc\.?|BSc|BA|B\.?A\.?|Master(?:'s)?|M\.?Sc\.?|MSc|MA|M\.?A\.?|PhD|Ph\.?D\.?|HND|Diploma)\b`)
)

// ExtractEducation returns the first degree found in text, normalized and
// followed by the field of study when one can be isolated.
func ExtractEducation(text string) *string {
	for _, line := range nonEmptyLines(text) {
		for _, pattern := range degreePatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			degree := NormalizeDegree(m[1])
			field := strings.TrimSpace(fieldTrailer.ReplaceAllString(strings.TrimSpace(m[2]), ""))

			if len(field) > fieldMinLength && len(field) < fieldMaxLength && fieldLetters.MatchString(field) {
				return ptr(degree + " " + field)
			}
			if len(field) >= fieldMinLength {
				return ptr(degree)
			}
		}
	}

	if m := degreeKeyword.FindStringSubmatch(text); m != nil {
		return ptr(NormalizeDegree(m[1]))
	}

	return nil
}

// NormalizeDegree maps a degree spelling to its canonical code.
// Unrecognized input is returned unchanged.
func NormalizeDegree(degree string) string {
	d := strings.ToLower(degree)
	d = strings.NewReplacer(".", "", "'", "").Replace(d)

	switch {
	case strings.Contains(d, "phd"), strings.Contains(d, "doctorate"):
		return "PhD"
	case strings.Contains(d, "hnd"):
		return "HND"
	case strings.Contains(d, "diploma"):
		return "Diploma"
	case strings.Contains(d, "bachelor"), strings.Contains(d, "bsc"), strings.Contains(d, "ba"):
		return "BSc"
	case strings.Contains(d, "master"), strings.Contains(d, "msc"), strings.Contains(d, "ma"):
		return "MSc"
	default:
		return degree
	}
}
