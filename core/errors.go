package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is returned when input is rejected before reaching the store.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// UserError carries the message shown to the user next to the underlying cause,
// which is only ever logged.
type UserError struct {
	Message string
	Err     error
}

func NewUserError(msg string, err error) error {
	return &UserError{Message: msg, Err: err}
}

func (err UserError) Error() string {
	if err.Err == nil {
		return err.Message
	}
	return err.Message + ": " + err.Err.Error()
}

func (err UserError) Unwrap() error { return err.Err }

// UserMessage returns the user-facing message of err and whether it had one.
func UserMessage(err error) (string, bool) {
	var uErr *UserError
	if errors.As(err, &uErr) {
		return uErr.Message, true
	}
	return "", false
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
