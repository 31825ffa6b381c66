package pipeline

import "fmt"

// MissingDocumentError is returned when a submission carries no documents at all
type MissingDocumentError struct{}

func (e *MissingDocumentError) Error() string {
	return "submission must include a resume or a cover letter"
}

// StorageError is returned when an uploaded file cannot be kept
type StorageError struct {
	Field string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to store %s upload: %v", e.Field, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// PersistError is returned when the scored applicant cannot be saved
type PersistError struct {
	Cause error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to save applicant: %v", e.Cause)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}
