package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/applicant-selector/internal/extraction"
	"github.com/jonathan/applicant-selector/internal/types"
)

const (
	toneScorePerPhrase = 2
	maxToneScore       = 25
)

// CoverLetterScorer rates a cover letter on sentiment, length and professional tone
type CoverLetterScorer struct {
	analyzer Analyzer
	phrases  []string
}

// NewCoverLetterScorer creates a scorer. A nil vocab or analyzer selects the default.
func NewCoverLetterScorer(vocab *extraction.Vocabulary, analyzer Analyzer) *CoverLetterScorer {
	if vocab == nil {
		vocab = extraction.DefaultVocabulary()
	}
	if analyzer == nil {
		analyzer = NewLexiconAnalyzer()
	}
	return &CoverLetterScorer{
		analyzer: analyzer,
		phrases:  vocab.ProfessionalPhrases(),
	}
}

// Analyze scores text in [0,100].
//
// The sentiment base maps polarity 0 to 50 and is not clamped on its own;
// only the final sum is.
func (s *CoverLetterScorer) Analyze(text string) types.CoverLetterAssessment {
	polarity := s.analyzer.Polarity(s.analyzer.Tokenize(text))
	base := ((polarity+5)/10)*50 + 25

	total := base + float64(coverLetterLengthScore(extraction.WordCount(text))) + float64(s.toneScore(text))

	return types.CoverLetterAssessment{Score: clampScore(int(math.Round(total)))}
}

func coverLetterLengthScore(words int) int {
	switch {
	case words >= 200 && words <= 500:
		return 25
	case words >= 100 && words < 200:
		return 15
	case words > 500 && words <= 700:
		return 15
	default:
		return 0
	}
}

// toneScore awards points per occurrence of each professional phrase
func (s *CoverLetterScorer) toneScore(text string) int {
	lower := strings.ToLower(text)

	score := 0
	for _, phrase := range s.phrases {
		score += strings.Count(lower, phrase) * toneScorePerPhrase
	}
	return min(score, maxToneScore)
}
