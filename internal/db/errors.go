package db

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError is returned when an applicant id does not exist
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("applicant not found: %s", e.ID)
}

// DuplicateEmailError is returned when an applicant with the same email already exists
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("an applicant with email %q already exists", e.Email)
}

// InvalidApplicantError is returned for records that cannot be stored as given
type InvalidApplicantError struct {
	Field   string
	Message string
}

func (e *InvalidApplicantError) Error() string {
	return fmt.Sprintf("invalid applicant %s: %s", e.Field, e.Message)
}
