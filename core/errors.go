package core

import "github.com/pkg/errors"

type (
	// FieldError describes a validation failure on a single record field.
	FieldError struct {
		Field string
		Error string
	}

	// ValidationError carries the per-field failures of an invalid request.
	// The API error handler renders Fields as a field-to-message map.
	ValidationError struct {
		Err    error
		Fields []FieldError
	}
)

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals that the application is unhealthy and should terminate
// gracefully, e.g. when the database pool has been closed underneath us.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown checks whether the error chain contains a shutdown error.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
