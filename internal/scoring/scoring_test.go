package scoring

import (
	"strings"
	"testing"

	"github.com/jonathan/applicant-selector/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("lorem ", n))
}

type fixedAnalyzer struct {
	polarity float64
}

func (f fixedAnalyzer) Tokenize(text string) []string { return strings.Fields(text) }

func (f fixedAnalyzer) Polarity([]string) float64 { return f.polarity }

func TestCalculateResumeQuality(t *testing.T) {
	full := &types.ExtractedProfile{
		Email:           strPtr("a@real.io"),
		Phone:           strPtr("555-123-4567"),
		Education:       strPtr("BSc"),
		ExperienceYears: intPtr(5),
	}

	tests := []struct {
		name    string
		text    string
		profile *types.ExtractedProfile
		want    int
	}{
		{name: "empty", text: "", profile: &types.ExtractedProfile{}, want: 0},
		{name: "nil profile", text: "", profile: nil, want: 0},
		{name: "everything", text: words(600) + " Python", profile: full, want: 100},
		{name: "short band", text: words(350), profile: &types.ExtractedProfile{}, want: 20},
		{name: "long band", text: words(2500), profile: &types.ExtractedProfile{}, want: 20},
		{name: "too long", text: words(3001), profile: &types.ExtractedProfile{}, want: 0},
		{name: "zero experience earns nothing", text: "", profile: &types.ExtractedProfile{ExperienceYears: intPtr(0)}, want: 0},
		{name: "skills only", text: "Docker", profile: &types.ExtractedProfile{}, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateResumeQuality(tt.text, tt.profile)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestResumeLengthScore_Boundaries(t *testing.T) {
	assert.Equal(t, 0, resumeLengthScore(299))
	assert.Equal(t, 20, resumeLengthScore(300))
	assert.Equal(t, 20, resumeLengthScore(499))
	assert.Equal(t, 30, resumeLengthScore(500))
	assert.Equal(t, 30, resumeLengthScore(2000))
	assert.Equal(t, 20, resumeLengthScore(2001))
	assert.Equal(t, 20, resumeLengthScore(3000))
	assert.Equal(t, 0, resumeLengthScore(3001))
}

func TestCoverLetterScorer_Analyze(t *testing.T) {
	neutral := NewCoverLetterScorer(nil, fixedAnalyzer{})

	tests := []struct {
		name   string
		scorer *CoverLetterScorer
		text   string
		want   int
	}{
		{name: "empty is neutral", scorer: neutral, text: "", want: 50},
		{name: "length band and tone", scorer: neutral, text: "Dear hiring team " + words(246) + " Sincerely Ada", want: 79},
		{name: "tone is capped", scorer: neutral, text: strings.Repeat("experience ", 20), want: 75},
		{name: "short band", scorer: neutral, text: words(150), want: 65},
		{name: "upper band", scorer: neutral, text: words(600), want: 65},
		{name: "very positive clamps", scorer: NewCoverLetterScorer(nil, fixedAnalyzer{polarity: 100}), text: "x", want: 100},
		{name: "very negative clamps", scorer: NewCoverLetterScorer(nil, fixedAnalyzer{polarity: -100}), text: "x", want: 0},
		{name: "polarity shifts base", scorer: NewCoverLetterScorer(nil, fixedAnalyzer{polarity: 2}), text: "x", want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scorer.Analyze(tt.text).Score)
		})
	}
}

func TestCoverLetterScorer_DefaultAnalyzer(t *testing.T) {
	scorer := NewCoverLetterScorer(nil, nil)

	positive := scorer.Analyze("I am excited and passionate about this wonderful opportunity")
	negative := scorer.Analyze("I hate this terrible awful job")

	assert.Greater(t, positive.Score, negative.Score)
	assert.GreaterOrEqual(t, negative.Score, 0)
	assert.LessOrEqual(t, positive.Score, 100)
}

func TestLexiconAnalyzer(t *testing.T) {
	a := NewLexiconAnalyzer()

	assert.Equal(t, []string{"don't", "stop", "believing"}, a.Tokenize("Don't stop, 'believing'!"))
	assert.Equal(t, 0.0, a.Polarity(nil))
	assert.Equal(t, 3.0, a.Polarity(a.Tokenize("good")))
	assert.Equal(t, -1.5, a.Polarity(a.Tokenize("not good")))
	assert.Equal(t, 0.0, a.Polarity(a.Tokenize("the table")))
	assert.Greater(t, a.Polarity(a.Tokenize("great success")), 0.0)
	assert.Less(t, a.Polarity(a.Tokenize("bad failure")), 0.0)
}

func TestLexiconAnalyzer_WordScores(t *testing.T) {
	a := NewLexiconAnalyzer()

	tests := []struct {
		word string
		want float64
	}{
		{word: "thrilled", want: 5},
		{word: "outstanding", want: 5},
		{word: "superb", want: 5},
		{word: "enthusiastic", want: 3},
		{word: "meticulous", want: 2},
		{word: "disappointed", want: -2},
		{word: "furious", want: -3},
		{word: "torture", want: -4},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Polarity([]string{tt.word}))
		})
	}
}

func TestParseLexicon(t *testing.T) {
	a, err := ParseLexicon("# comment\nhappy\t3\n\nsad\t-2\n")
	require.NoError(t, err)
	assert.Equal(t, 0.5, a.Polarity([]string{"happy", "sad"}))

	_, err = ParseLexicon("happy 3")
	assert.Error(t, err)

	_, err = ParseLexicon("happy\tvery")
	assert.Error(t, err)
}

func TestScore(t *testing.T) {
	got := Score(CompositeInput{
		SkillCount:         5,
		ExperienceYears:    intPtr(4),
		HasEducation:       true,
		ResumeQualityScore: 100,
		CoverLetterScore:   100,
	})

	assert.Equal(t, SubScores{
		Skills:        100,
		Experience:    100,
		Education:     85,
		Assessment:    80,
		ResumeQuality: 100,
		CoverLetter:   100,
	}, got.SubScores)
	assert.Equal(t, 94.0, got.OverallScore)
	assert.Equal(t, types.StatusHighlyRecommended, got.Status)
}

func TestScore_Sparse(t *testing.T) {
	got := Score(CompositeInput{
		AssessmentScore:    intPtr(0),
		ResumeQualityScore: 0,
		CoverLetterScore:   DefaultCoverLetterScore,
	})

	assert.Equal(t, 50, got.Skills)
	assert.Equal(t, 50, got.Experience)
	assert.Equal(t, 50, got.Education)
	assert.Equal(t, 0, got.Assessment)
	// 12.5 + 12.5 + 10 + 0 + 0 + 3.75
	assert.Equal(t, 38.75, got.OverallScore)
	assert.Equal(t, types.StatusUnderReview, got.Status)
}

func TestScore_ClampsInputs(t *testing.T) {
	got := Score(CompositeInput{
		SkillCount:         -3,
		AssessmentScore:    intPtr(150),
		ResumeQualityScore: -10,
		CoverLetterScore:   200,
	})

	assert.Equal(t, 50, got.Skills)
	assert.Equal(t, 100, got.Assessment)
	assert.Equal(t, 0, got.ResumeQuality)
	assert.Equal(t, 100, got.CoverLetter)
	assert.GreaterOrEqual(t, got.OverallScore, 0.0)
	assert.LessOrEqual(t, got.OverallScore, 100.0)
}

func TestSubScoreFormulas(t *testing.T) {
	assert.Equal(t, 50, SkillsScore(0))
	assert.Equal(t, 80, SkillsScore(3))
	assert.Equal(t, 100, SkillsScore(9))

	assert.Equal(t, 50, ExperienceScore(nil))
	assert.Equal(t, 50, ExperienceScore(intPtr(0)))
	assert.Equal(t, 55, ExperienceScore(intPtr(1)))
	assert.Equal(t, 100, ExperienceScore(intPtr(4)))

	assert.Equal(t, 85, EducationScore(true))
	assert.Equal(t, 50, EducationScore(false))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		overall float64
		want    types.Status
	}{
		{100, types.StatusHighlyRecommended},
		{90.00, types.StatusHighlyRecommended},
		{89.99, types.StatusRecommended},
		{80, types.StatusRecommended},
		{79.99, types.StatusConsider},
		{70, types.StatusConsider},
		{69.99, types.StatusUnderReview},
		{0, types.StatusUnderReview},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.overall))
		})
	}
}

func TestOverall_Exact(t *testing.T) {
	// 25 + 25 + 17 + 12 + 7.5 + 3.45
	got := Overall(SubScores{Skills: 100, Experience: 100, Education: 85, Assessment: 80, ResumeQuality: 75, CoverLetter: 69})
	assert.Equal(t, 89.95, got)
	assert.Equal(t, types.StatusRecommended, StatusFor(got))
}
