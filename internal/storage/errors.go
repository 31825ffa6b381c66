package storage

import "fmt"

// KeyError is returned for object keys that are empty or not plain file names
type KeyError struct {
	Key     string
	Message string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid storage key %q: %s", e.Key, e.Message)
}

// NotFoundError is returned when no object exists under a key
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("stored object %q not found", e.Key)
}

// BackendError wraps failures reported by the underlying storage backend
type BackendError struct {
	Backend string
	Op      string
	Key     string
	Cause   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s %s %q: %v", e.Backend, e.Op, e.Key, e.Cause)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}
