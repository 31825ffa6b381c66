package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/applicant-selector/internal/db"
	"github.com/jonathan/applicant-selector/internal/ingestion"
	"github.com/jonathan/applicant-selector/internal/pipeline"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrFileTooLarge indicates an uploaded file exceeds the size limit
type ErrFileTooLarge struct {
	Field    string
	MaxBytes int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("%s file exceeds the %d MB limit", e.Field, e.MaxBytes/(1024*1024))
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Wrapped errors are matched by type.
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		tooLarge    *ErrFileTooLarge
		maxBytes    *http.MaxBytesError
		unsupported *ingestion.UnsupportedTypeError
		extraction  *ingestion.ExtractionError
		missing     *pipeline.MissingDocumentError
		notFound    *db.NotFoundError
		duplicate   *db.DuplicateEmailError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &unsupported), errors.As(err, &missing):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &duplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
