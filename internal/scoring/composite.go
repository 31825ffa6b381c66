package scoring

import "github.com/jonathan/applicant-selector/internal/types"

// Score defaults for missing inputs
const (
	DefaultAssessmentScore    = 80
	DefaultCoverLetterScore   = 75
	DefaultResumeQualityScore = 75
)

const (
	educationPresentScore  = 85
	educationMissingScore  = 50
	experienceMissingScore = 50

	highlyRecommendedThreshold = 90
	recommendedThreshold       = 80
	considerThreshold          = 70
)

// weights in percent; they sum to 100
const (
	skillsWeight        = 25
	experienceWeight    = 25
	educationWeight     = 20
	assessmentWeight    = 15
	resumeQualityWeight = 10
	coverLetterWeight   = 5
)

// CompositeInput is everything the composite scorer needs about an applicant
type CompositeInput struct {
	SkillCount         int
	ExperienceYears    *int
	HasEducation       bool
	AssessmentScore    *int // nil selects DefaultAssessmentScore
	ResumeQualityScore int
	CoverLetterScore   int
}

// SubScores are the six component scores, each in [0,100]
type SubScores struct {
	Skills        int `json:"skills_score"`
	Experience    int `json:"experience_score"`
	Education     int `json:"education_score"`
	Assessment    int `json:"assessment_score"`
	ResumeQuality int `json:"resume_quality_score"`
	CoverLetter   int `json:"cover_letter_score"`
}

// Breakdown is the result of composite scoring
type Breakdown struct {
	SubScores
	OverallScore float64      `json:"overall_score"`
	Status       types.Status `json:"status"`
}

// Score computes the sub-scores, weighted overall score and status
func Score(in CompositeInput) Breakdown {
	assessment := DefaultAssessmentScore
	if in.AssessmentScore != nil {
		assessment = *in.AssessmentScore
	}

	sub := SubScores{
		Skills:        SkillsScore(in.SkillCount),
		Experience:    ExperienceScore(in.ExperienceYears),
		Education:     EducationScore(in.HasEducation),
		Assessment:    clampScore(assessment),
		ResumeQuality: clampScore(in.ResumeQualityScore),
		CoverLetter:   clampScore(in.CoverLetterScore),
	}

	overall := Overall(sub)
	return Breakdown{
		SubScores:    sub,
		OverallScore: overall,
		Status:       StatusFor(overall),
	}
}

// SkillsScore is 50 plus 10 per skill, capped at 100
func SkillsScore(count int) int {
	return min(max(count, 0)*10+50, 100)
}

// ExperienceScore is 40 plus 15 per year, capped at 100; 50 when unknown or zero
func ExperienceScore(years *int) int {
	if years == nil || *years <= 0 {
		return experienceMissingScore
	}
	return min(*years*15+40, 100)
}

// EducationScore is 85 when a degree was found, otherwise 50
func EducationScore(present bool) int {
	if present {
		return educationPresentScore
	}
	return educationMissingScore
}

// Overall returns the weighted sum of sub-scores with two-decimal precision.
// The sum is taken in integer hundredths so the result is exact.
func Overall(s SubScores) float64 {
	hundredths := skillsWeight*s.Skills +
		experienceWeight*s.Experience +
		educationWeight*s.Education +
		assessmentWeight*s.Assessment +
		resumeQualityWeight*s.ResumeQuality +
		coverLetterWeight*s.CoverLetter
	return float64(hundredths) / 100
}

// StatusFor maps an overall score to its status; thresholds are inclusive
func StatusFor(overall float64) types.Status {
	switch {
	case overall >= highlyRecommendedThreshold:
		return types.StatusHighlyRecommended
	case overall >= recommendedThreshold:
		return types.StatusRecommended
	case overall >= considerThreshold:
		return types.StatusConsider
	default:
		return types.StatusUnderReview
	}
}
