package nlp

import "fmt"

// StatusError is returned when the NLP service answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nlp service returned status %d: %s", e.StatusCode, e.Body)
}

// ResponseError means a matcher response could not be decoded or failed validation
type ResponseError struct {
	Message string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid skill match response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid skill match response: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
