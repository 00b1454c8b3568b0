package trophy

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrCorruptData    = errors.New("corrupt data")
	ErrNoMatch        = errors.New("no updates detected")
	ErrExternalFetch  = errors.New("external fetch failed")
	ErrValidation     = errors.New("validation failed")
)

// MalformedInputError reports JSON or array shape problems in user input.
// The store is never mutated when it is returned.
type MalformedInputError struct {
	Message string
	Err     error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

// CorruptDataError reports a compact code that could not be decoded
type CorruptDataError struct {
	Message string
	Err     error
}

func (e *CorruptDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }

// NoMatchError is informational: a heuristic sync ran but found nothing to update.
type NoMatchError struct {
	Message string
}

func (e *NoMatchError) Error() string { return e.Message }

func (e *NoMatchError) Is(target error) bool { return target == ErrNoMatch }

// ExternalFetchError carries the reason an achievement list could not be fetched
type ExternalFetchError struct {
	Reason string
	Err    error
}

func (e *ExternalFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ExternalFetchError) Unwrap() error { return e.Err }

func (e *ExternalFetchError) Is(target error) bool { return target == ErrExternalFetch }

// ValidationError reports a rejected request such as a duplicate game or a
// missing required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Malformed(message string, err error) error {
	return &MalformedInputError{Message: message, Err: err}
}

func Corrupt(message string, err error) error {
	return &CorruptDataError{Message: message, Err: err}
}

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UserMessage returns the transient message shown to the user for err.
// Wrapped causes are left out.
func UserMessage(err error) string {
	var malformed *MalformedInputError
	var corrupt *CorruptDataError
	var noMatch *NoMatchError
	var fetch *ExternalFetchError
	var invalid *ValidationError

	switch {
	case errors.As(err, &malformed):
		return malformed.Message
	case errors.As(err, &corrupt):
		return corrupt.Message
	case errors.As(err, &noMatch):
		return noMatch.Message
	case errors.As(err, &fetch):
		return "Error: " + fetch.Reason
	case errors.As(err, &invalid):
		return invalid.Message
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
