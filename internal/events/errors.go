package events

import "fmt"

// PublishError is returned when the broker cannot be reached or rejects a message
type PublishError struct {
	Queue   string
	Message string
	Cause   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("%s (queue %q): %v", e.Message, e.Queue, e.Cause)
}

func (e *PublishError) Unwrap() error {
	return e.Cause
}
