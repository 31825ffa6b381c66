// Package types provides type definitions for structured data used throughout the applicant-selector system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// ExtractedProfile is the result of running every extractor over one resume.
// Each field is independently optional; a nil pointer means the extractor found nothing.
type ExtractedProfile struct {
	Name               *string  `json:"name"`
	Email              *string  `json:"email"`
	Phone              *string  `json:"phone"`
	Education          *string  `json:"education"`
	ExperienceYears    *int     `json:"experience_years"`
	Skills             []string `json:"skills"`
	ResumeQualityScore int      `json:"resume_quality_score"`
}

// HasExperience reports whether a non-zero experience figure was extracted.
// Zero years is treated like an absent value when scoring.
func (p *ExtractedProfile) HasExperience() bool {
	return p != nil && p.ExperienceYears != nil && *p.ExperienceYears > 0
}

// CoverLetterAssessment holds the score derived from a cover letter
type CoverLetterAssessment struct {
	Score int `json:"score"`
}

// Status is the recommendation label derived from an overall score
type Status string

// Status values, ordered from lowest to highest
const (
	StatusUnderReview       Status = "Under Review"
	StatusConsider          Status = "Consider"
	StatusRecommended       Status = "Recommended"
	StatusHighlyRecommended Status = "Highly Recommended"
)

// Statuses lists every status value from lowest to highest
var Statuses = []Status{
	StatusUnderReview,
	StatusConsider,
	StatusRecommended,
	StatusHighlyRecommended,
}

// IsValid reports whether s is one of the known status values.
func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Default values applied to records that carry no explicit value.
const (
	DefaultFullName        = "Unknown"
	DefaultMotivationLevel = "Medium"
	DefaultAvailability    = "Immediate"
)

// ScoredApplicant is the persisted applicant entity
type ScoredApplicant struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	Phone              *string   `json:"phone"`
	Education          *string   `json:"education"`
	ExperienceYears    *int      `json:"experience_years"`
	SkillsScore        int       `json:"skills_score"`
	ExperienceScore    int       `json:"experience_score"`
	EducationScore     int       `json:"education_score"`
	AssessmentScore    int       `json:"assessment_score"`
	ResumeQualityScore int       `json:"resume_quality_score"`
	CoverLetterScore   int       `json:"cover_letter_score"`
	OverallScore       float64   `json:"overall_score"`
	Status             Status    `json:"status"`
	MotivationLevel    string    `json:"motivation_level"`
	Availability       string    `json:"availability"`
	Skills             []string  `json:"skills"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
