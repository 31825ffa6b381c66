package db

import "github.com/jonathan/applicant-selector/internal/types"

// Pagination limits for ListApplicants
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// ApplicantFilters holds optional filters for listing applicants
type ApplicantFilters struct {
	Status types.Status
	Limit  int
	Offset int
}

// Normalize clamps Limit and Offset into their accepted ranges.
func (f ApplicantFilters) Normalize() ApplicantFilters {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Statistics summarizes applicants per status
type Statistics struct {
	Total             int     `json:"total"`
	HighlyRecommended int     `json:"highlyRecommended"`
	Recommended       int     `json:"recommended"`
	Consider          int     `json:"consider"`
	UnderReview       int     `json:"underReview"`
	AvgScore          float64 `json:"avgScore"`
}

// Skill is one skill row attached to an applicant
type Skill struct {
	Name             string  `json:"skill_name"`
	ProficiencyLevel *string `json:"proficiency_level"`
}
