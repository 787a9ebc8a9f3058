package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error is the structured error returned by every layer of the engine
type Error struct {
	Code    Code           `json:"code"`
	Reason  Reason         `json:"reason,omitempty"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on code, and on reason when the target carries one
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || e.Code != other.Code {
		return false
	}
	return other.Reason == "" || other.Reason == e.Reason
}

// WithMeta attaches a key to the error's metadata
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = value
	return e
}

// WithReason tags the error with a game rule and takes that rule's code
func (e *Error) WithReason(reason Reason) *Error {
	e.Code = reason.Code()
	e.Reason = reason
	return e
}

// WithCode reclassifies the error. A reason inherited from the cause no
// longer applies and is cleared.
func (e *Error) WithCode(code Code) *Error {
	e.Code = code
	e.Reason = ""
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func Unavailable(message string) *Error {
	return New(CodeUnavailable, message)
}

// Wrap adds context to err. Code, reason and metadata of the innermost Error
// carry over; anything else becomes INTERNAL. Wrapping nil returns nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeInternal, Message: message, Cause: err}
	if inner, ok := lookup(err); ok {
		wrapped.Code = inner.Code
		wrapped.Reason = inner.Reason
		wrapped.Meta = maps.Clone(inner.Meta)
	}
	return wrapped
}

func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
