package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the entity id does not exist at its level.
	ErrNotFound = errors.New("not found")
	// ErrParentNotFound means the referenced parent id does not exist one
	// level up.
	ErrParentNotFound = errors.New("parent not found")
	// ErrOwnershipMismatch means the child exists but does not belong to the
	// claimed parent.
	ErrOwnershipMismatch = errors.New("ownership mismatch")
)

// ValidationError reports a field constraint violation. It is produced
// before any persistence call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
