// Package export writes applicant lists as CSV or Excel workbooks.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/applicant-selector/internal/types"
)

// Format is an export file format
type Format string

// Supported export formats
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a user-supplied format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q: use csv or xlsx", s)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write exports applicants in format f
func Write(w io.Writer, f Format, applicants []types.ScoredApplicant) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, applicants)
	case FormatXLSX:
		return WriteXLSX(w, applicants)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// Headers are the column titles shared by every export format
var Headers = []string{
	"ID",
	"Name",
	"Email",
	"Phone",
	"Education",
	"Experience (Years)",
	"Overall Score",
	"Skills Score",
	"Experience Score",
	"Education Score",
	"Assessment Score",
	"Resume Quality",
	"Cover Letter Score",
	"Status",
	"Motivation",
	"Availability",
	"Skills",
	"Created Date",
}

const notAvailable = "N/A"

// Row renders one applicant as export cells, in Headers order
func Row(a types.ScoredApplicant) []string {
	return []string{
		a.ID.String(),
		a.FullName,
		a.Email,
		stringOr(a.Phone, notAvailable),
		stringOr(a.Education, ""),
		intOr(a.ExperienceYears, notAvailable),
		strconv.FormatFloat(a.OverallScore, 'f', 2, 64),
		strconv.Itoa(a.SkillsScore),
		strconv.Itoa(a.ExperienceScore),
		strconv.Itoa(a.EducationScore),
		strconv.Itoa(a.AssessmentScore),
		strconv.Itoa(a.ResumeQualityScore),
		strconv.Itoa(a.CoverLetterScore),
		string(a.Status),
		a.MotivationLevel,
		a.Availability,
		strings.Join(a.Skills, "; "),
		createdDate(a),
	}
}

// Summary aggregates an applicant list per status
type Summary struct {
	Total    int
	ByStatus map[types.Status]int
	AvgScore float64
}

// Summarize counts applicants per status and averages their overall score, rounded to two decimals
func Summarize(applicants []types.ScoredApplicant) Summary {
	s := Summary{Total: len(applicants), ByStatus: make(map[types.Status]int, len(types.Statuses))}
	if len(applicants) == 0 {
		return s
	}
	var hundredths int64
	for _, a := range applicants {
		s.ByStatus[a.Status]++
		hundredths += int64(a.OverallScore*100 + 0.5)
	}
	avg := float64(hundredths) / float64(len(applicants))
	s.AvgScore = float64(int64(avg+0.5)) / 100
	return s
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func intOr(n *int, fallback string) string {
	if n == nil || *n == 0 {
		return fallback
	}
	return strconv.Itoa(*n)
}

func createdDate(a types.ScoredApplicant) string {
	if a.CreatedAt.IsZero() {
		return notAvailable
	}
	return a.CreatedAt.Format("2006-01-02")
}
