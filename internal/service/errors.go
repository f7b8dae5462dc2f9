package service

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnly is returned when a write targets a synthesized governance
	// occurrence through the event editors.
	ErrReadOnly = errors.New("governance meetings are read-only here")

	// ErrForbidden is returned when a non-admin actor attempts a delete.
	ErrForbidden = errors.New("admin access required")
)

// ValidationError reports a rejected write-path field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
