package incline

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError rejects an experiment definition. Definitions are checked
// in full before anything is submitted, so a validation error means the
// benchmarking backend was never contacted.
type ValidationError struct {
	// Field names the part of the definition that was rejected.
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err records an invalid experiment definition.
func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

func invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
