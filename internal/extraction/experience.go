package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	maxExperienceYears = 50
	earliestCareerYear = 1970
)

var explicitExperiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:over|more than|approximately|about)?\s*(\d{1,2})\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:professional\s+)?experience\b`),
	regexp.MustCompile(`(?i)\bexperience[:\s]+(?:over|more than|approximately|about)?\s*(\d{1,2})\+?\s*(?:years?|yrs?)\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:professional\s+)?(?:work\s+)?experience\b`),
	regexp.MustCompile(`(?i)\b(?:worked|employed)\s+for\s+(?:over|about|approximately)?\s*(\d{1,2})\+?\s*(?:years?|yrs?)\b`),
}

const monthPrefix = `((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+)?`

var (
	// submatches: start month, start year, end month, end year
	monthRangePattern = regexp.MustCompile(
		`(?i)\b` + monthPrefix + `(\d{4})\s*[-–—]\s*` + monthPrefix + `(\d{4}|Present|Current|Now)\b`)
	// submatches: start year, end year
	yearRangePattern = regexp.MustCompile(`(?i)\b(\d{4})\s*[-–—]\s*(\d{4}|Present|Current|Now)\b`)
)

// ExtractExperience returns years of experience from an explicit statement,
// falling back to summing employment date ranges. Nil when neither yields a value.
func ExtractExperience(text string) *int {
	return extractExperience(text, time.Now())
}

func extractExperience(text string, now time.Time) *int {
	for _, pattern := range explicitExperiencePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err == nil && years >= 0 && years <= maxExperienceYears {
			return ptr(years)
		}
	}

	return CalculateExperienceFromDates(text, now)
}

// CalculateExperienceFromDates sums the months covered by every valid year
// range in text. Open ranges (Present/Current/Now) end in now's year.
// Overlapping jobs are counted once per range, not merged.
func CalculateExperienceFromDates(text string, now time.Time) *int {
	currentYear := now.Year()
	totalMonths := 0

	var counted [][]int
	for _, idx := range monthRangePattern.FindAllStringSubmatchIndex(text, -1) {
		counted = append(counted, idx[:2])
		totalMonths += rangeMonths(text[idx[4]:idx[5]], text[idx[8]:idx[9]], currentYear)
	}

	for _, idx := range yearRangePattern.FindAllStringSubmatchIndex(text, -1) {
		if overlapsAny(idx[0], idx[1], counted) {
			continue
		}
		totalMonths += rangeMonths(text[idx[2]:idx[3]], text[idx[4]:idx[5]], currentYear)
	}

	if totalMonths <= 0 {
		return nil
	}

	years := int(math.Round(float64(totalMonths) / 12))
	if years > maxExperienceYears {
		return nil
	}
	return ptr(years)
}

// rangeMonths returns the months between start and end years, or 0 when the range is implausible
func rangeMonths(startText, endText string, currentYear int) int {
	start, err := strconv.Atoi(startText)
	if err != nil {
		return 0
	}

	var end int
	switch strings.ToLower(endText) {
	case "present", "current", "now":
		end = currentYear
	default:
		if end, err = strconv.Atoi(endText); err != nil {
			return 0
		}
	}

	if start < earliestCareerYear || start > currentYear {
		return 0
	}
	if end < start || end > currentYear+1 {
		return 0
	}
	return (end - start) * 12
}

func overlapsAny(start, end int, spans [][]int) bool {
	for _, span := range spans {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}
