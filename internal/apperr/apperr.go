package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule failure so the HTTP layer can pick a
// status code without string matching.
type Kind int

const (
	// KindUnknown is the zero value; errors that did not originate here.
	KindUnknown Kind = iota
	// KindNotFound - a referenced doctor, patient, appointment or
	// prescription does not exist.
	KindNotFound
	// KindInvalidArgument - a required field is missing or a supplied value
	// is not acceptable (e.g. a visiting date in the past).
	KindInvalidArgument
	// KindInvalidState - the operation is not allowed in the record's
	// current status (e.g. updating a completed appointment).
	KindInvalidState
)

// Error is the error type returned by the service layer. Handlers map its
// Kind to an HTTP status via utils.FromError.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound creates a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument creates a KindInvalidArgument error.
func InvalidArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// InvalidState creates a KindInvalidState error.
func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or KindUnknown if err was not produced by
// this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a KindNotFound error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsInvalidArgument reports whether err is a KindInvalidArgument error.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

// IsInvalidState reports whether err is a KindInvalidState error.
func IsInvalidState(err error) bool {
	return KindOf(err) == KindInvalidState
}
