// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/applicant-selector/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func orNotFound(s *string) string {
	if s == nil {
		return "(not found)"
	}
	return *s
}

// PrintProfile outputs the fields extracted from one resume.
func (p *Printer) PrintProfile(source string, profile *types.ExtractedProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:     %s\n", source))
	sb.WriteString(fmt.Sprintf("Name:       %s\n", orNotFound(profile.Name)))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", orNotFound(profile.Email)))
	sb.WriteString(fmt.Sprintf("Phone:      %s\n", orNotFound(profile.Phone)))
	sb.WriteString(fmt.Sprintf("Education:  %s\n", orNotFound(profile.Education)))
	if profile.ExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Experience: %d years\n", *profile.ExperienceYears))
	} else {
		sb.WriteString("Experience: (not found)\n")
	}
	sb.WriteString(fmt.Sprintf("Quality:    %d/100\n", profile.ResumeQualityScore))

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills (%d):\n", len(profile.Skills)))
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScores outputs the sub-scores, overall score and status of an applicant.
func (p *Printer) PrintScores(a *types.ScoredApplicant) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s <%s>\n\n", a.FullName, a.Email))
	sb.WriteString(fmt.Sprintf("Skills:         %3d\n", a.SkillsScore))
	sb.WriteString(fmt.Sprintf("Experience:     %3d\n", a.ExperienceScore))
	sb.WriteString(fmt.Sprintf("Education:      %3d\n", a.EducationScore))
	sb.WriteString(fmt.Sprintf("Assessment:     %3d\n", a.AssessmentScore))
	sb.WriteString(fmt.Sprintf("Resume quality: %3d\n", a.ResumeQualityScore))
	sb.WriteString(fmt.Sprintf("Cover letter:   %3d\n", a.CoverLetterScore))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall:        %.2f (%s)", a.OverallScore, a.Status))

	p.printBox("APPLICANT SCORES", sb.String())
}

// PrintRanking outputs the top applicants by overall score.
func (p *Printer) PrintRanking(applicants []types.ScoredApplicant) {
	if len(applicants) == 0 {
		return
	}

	ranked := make([]types.ScoredApplicant, len(applicants))
	copy(ranked, applicants)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallScore > ranked[j].OverallScore
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total applicants scored: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		a := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, a.FullName))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  %s\n", a.OverallScore, a.Status))
		if len(a.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(a.Skills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more applicants", len(ranked)-maxItemsToShow))
	}

	p.printBox("APPLICANT RANKING", strings.TrimSuffix(sb.String(), "\n"))
}
