package extraction

import "fmt"

// VocabularyError represents a failure loading a vocabulary override file
type VocabularyError struct {
	Path    string
	Message string
	Cause   error
}

func (e *VocabularyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vocabulary %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("vocabulary %s: %s", e.Path, e.Message)
}

func (e *VocabularyError) Unwrap() error {
	return e.Cause
}
