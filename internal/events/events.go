// Package events publishes notifications about newly scored applicants.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/applicant-selector/internal/types"
)

// TypeApplicantScored is the event type emitted after an applicant is stored
const TypeApplicantScored = "applicant.scored"

// ApplicantScored is the message body published for each stored applicant
type ApplicantScored struct {
	Type         string       `json:"type"`
	ApplicantID  uuid.UUID    `json:"applicant_id"`
	FullName     string       `json:"full_name"`
	Email        string       `json:"email"`
	OverallScore float64      `json:"overall_score"`
	Status       types.Status `json:"status"`
	Skills       []string     `json:"skills"`
	OccurredAt   time.Time    `json:"occurred_at"`
}

// NewApplicantScored builds the event for a stored applicant.
func NewApplicantScored(a *types.ScoredApplicant, now time.Time) ApplicantScored {
	skills := a.Skills
	if skills == nil {
		skills = []string{}
	}
	return ApplicantScored{
		Type:         TypeApplicantScored,
		ApplicantID:  a.ID,
		FullName:     a.FullName,
		Email:        a.Email,
		OverallScore: a.OverallScore,
		Status:       a.Status,
		Skills:       skills,
		OccurredAt:   now.UTC(),
	}
}

// Publisher delivers applicant events to downstream consumers
type Publisher interface {
	PublishApplicantScored(ctx context.Context, event ApplicantScored) error
	Close() error
}

// NoopPublisher discards every event
type NoopPublisher struct{}

// PublishApplicantScored does nothing.
func (NoopPublisher) PublishApplicantScored(context.Context, ApplicantScored) error { return nil }

// Close does nothing.
func (NoopPublisher) Close() error { return nil }
