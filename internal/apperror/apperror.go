package apperror

import (
	"errors"
	"fmt"
)

// Sentinel categories for the error taxonomy. Services wrap these with
// context via fmt.Errorf("...: %w", ...); controllers map them to HTTP
// statuses with errors.Is.
var (
	// ErrValidation covers missing required assessment fields, invalid
	// audience kinds, empty question keys and illegal state transitions.
	ErrValidation = errors.New("validation error")

	// ErrNotFound covers absent assessments, reviews and responses.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers a duplicate LearnerResponse insert; callers must
	// retry the operation as an update.
	ErrConflict = errors.New("conflict")
)

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
