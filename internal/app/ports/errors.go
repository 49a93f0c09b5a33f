package ports

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrBackendNotConfigured = errors.New("backend not configured")
	ErrNetworkFailure       = errors.New("network failure")
	ErrHTTPStatus           = errors.New("backend returned non-success status")
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrSchemaViolation      = errors.New("schema violation")
)

// BackendError is a non-2xx answer from an AI backend.
type BackendError struct {
	Backend string
	Status  int
	Body    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Backend, e.Status, e.Body)
}

func (e *BackendError) Unwrap() error {
	return ErrHTTPStatus
}

// SchemaError is a payload that parsed but did not match its schema.
type SchemaError struct {
	Schema string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Schema, e.Err)
}

func (e *SchemaError) Unwrap() []error {
	return []error{ErrSchemaViolation, e.Err}
}
