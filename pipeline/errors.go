package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies pipeline failures.
type Kind int

const (
	// KindValidation is malformed caller input, detected before any output is written.
	KindValidation Kind = iota
	// KindData means the input bytes are not a decodable image.
	KindData
	// KindSystem is any I/O failure.
	KindSystem
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindData:
		return "data"
	case KindSystem:
		return "system"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified pipeline failure.
type Error struct {
	// Kind of failure.
	Kind Kind
	// Message is human readable and already includes the cause's text.
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Kind.String() + " error: " + e.Message
}

// Cause returns the underlying error, if any.
func (e *Error) Cause() error { return e.cause }

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error { return e.cause }

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// wrapError folds err's text into message and keeps err as the cause.
func wrapError(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: errors.Wrap(err, message).Error(), cause: err}
}

func dataError(err error, message string) *Error {
	return wrapError(KindData, err, message)
}

func systemError(err error, message string) *Error {
	return wrapError(KindSystem, err, message)
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
