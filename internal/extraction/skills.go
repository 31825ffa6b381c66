package extraction

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// shortTermLength is the length at or below which a skill term must stand alone
const shortTermLength = 2

// SkillMatcher finds which candidate skills appear in a document.
// Implementations may call remote services and must honour ctx cancellation.
type SkillMatcher interface {
	MatchSkills(ctx context.Context, text string, candidates []string) ([]string, error)
}

// MatchSkills returns the vocabulary skills mentioned in text, in vocabulary order.
// Matching is case-insensitive containment; terms of two characters or fewer
// ("R", "Go", "C#") only match when not surrounded by letters or digits.
func (v *Vocabulary) MatchSkills(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, term := range v.skills {
		if containsTerm(lower, term.lower) {
			found = append(found, term.name)
		}
	}
	return found
}

// LocalMatcher adapts a Vocabulary to the SkillMatcher interface.
// Candidates are ignored; the vocabulary's own skill list is used.
type LocalMatcher struct {
	Vocabulary *Vocabulary
}

// MatchSkills implements SkillMatcher
func (m LocalMatcher) MatchSkills(ctx context.Context, text string, _ []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Vocabulary.MatchSkills(text), nil
}

func containsTerm(lowerText, term string) bool {
	if utf8.RuneCountInString(term) > shortTermLength {
		return strings.Contains(lowerText, term)
	}

	offset := 0
	for {
		i := strings.Index(lowerText[offset:], term)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(term)
		if !isWordRune(lastRuneBefore(lowerText, start)) && !isWordRune(firstRuneAt(lowerText, end)) {
			return true
		}
		offset = start + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lastRuneBefore(s string, i int) rune {
	if i <= 0 {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r
}

func firstRuneAt(s string, i int) rune {
	if i >= len(s) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}
