package domain

import (
	"errors"
	"fmt"
)

// ErrUpstreamLookup means at least one of the metadata provider calls did not
// succeed. Callers never see a partial result.
var ErrUpstreamLookup = errors.New("failed to fetch data from TMDB")

// ErrAlreadySolved guards the mark-solved transition.
var ErrAlreadySolved = errors.New("request is already marked as solved")

// ValidationError reports malformed or duplicate input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NotificationFailedError reports that the notification side effect failed and
// the solved flag was rolled back.
type NotificationFailedError struct {
	Err error
}

func (e *NotificationFailedError) Error() string {
	return "an error occurred while sending email"
}

func (e *NotificationFailedError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
