// Package scoring computes resume quality, cover letter and composite applicant scores.
package scoring

import (
	"github.com/jonathan/applicant-selector/internal/extraction"
	"github.com/jonathan/applicant-selector/internal/types"
)

// QualityScorer rates how complete a resume is
type QualityScorer struct {
	vocab *extraction.Vocabulary
}

// NewQualityScorer creates a scorer over vocab, or the default vocabulary when nil
func NewQualityScorer(vocab *extraction.Vocabulary) *QualityScorer {
	if vocab == nil {
		vocab = extraction.DefaultVocabulary()
	}
	return &QualityScorer{vocab: vocab}
}

// CalculateResumeQuality scores a resume with the default vocabulary
func CalculateResumeQuality(text string, profile *types.ExtractedProfile) int {
	return NewQualityScorer(nil).Score(text, profile)
}

// Score returns a completeness score in [0,100] from the resume's word count
// and which profile fields were found. The skills credit uses the local
// vocabulary so it does not depend on a remote matcher being reachable.
func (q *QualityScorer) Score(text string, profile *types.ExtractedProfile) int {
	score := resumeLengthScore(extraction.WordCount(text))

	if profile != nil {
		if profile.Email != nil {
			score += 15
		}
		if profile.Phone != nil {
			score += 10
		}
		if profile.Education != nil {
			score += 15
		}
		if profile.HasExperience() {
			score += 15
		}
	}

	if len(q.vocab.MatchSkills(text)) > 0 {
		score += 15
	}

	return clampScore(score)
}

func resumeLengthScore(words int) int {
	switch {
	case words >= 500 && words <= 2000:
		return 30
	case words >= 300 && words < 500:
		return 20
	case words > 2000 && words <= 3000:
		return 20
	default:
		return 0
	}
}

func clampScore(score int) int {
	return max(0, min(score, 100))
}
