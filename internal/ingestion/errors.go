package ingestion

import (
	"fmt"

	"github.com/jonathan/applicant-selector/internal/types"
)

// UnsupportedTypeError is returned for documents that are not PDF, DOC, DOCX, HTML or plain text
type UnsupportedTypeError struct {
	Filename string
	MIMEType string
}

func (e *UnsupportedTypeError) Error() string {
	if e.MIMEType != "" {
		return fmt.Sprintf("unsupported document type %q for %q: only PDF, DOC, DOCX, TXT and HTML files are allowed", e.MIMEType, e.Filename)
	}
	return fmt.Sprintf("unsupported document type for %q: only PDF, DOC, DOCX, TXT and HTML files are allowed", e.Filename)
}

// ExtractionError is returned when a supported document cannot be parsed
type ExtractionError struct {
	Filename  string
	MediaType types.MediaType
	Cause     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s text from %q: %v", e.MediaType, e.Filename, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
