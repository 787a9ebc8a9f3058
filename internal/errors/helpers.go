package errors

import (
	"errors"
)

func lookup(err error) (*Error, bool) {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// As is errors.As narrowed to *Error
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns OK for nil and INTERNAL for errors outside this package
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := lookup(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetReason returns the game rule behind err, empty when untagged
func GetReason(err error) Reason {
	if e, ok := lookup(err); ok {
		return e.Reason
	}
	return ""
}

func HasReason(err error, reason Reason) bool {
	return err != nil && GetReason(err) == reason
}

func HasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetMessage returns the message safe to show a player
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := lookup(err); ok {
		return e.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool           { return HasCode(err, CodeNotFound) }
func IsInvalidArgument(err error) bool    { return HasCode(err, CodeInvalidArgument) }
func IsFailedPrecondition(err error) bool { return HasCode(err, CodeFailedPrecondition) }

// IsUserFacing reports whether err is an expected rule violation or bad
// input rather than a system failure. Handlers skip error logging for these.
func IsUserFacing(err error) bool {
	if reason := GetReason(err); reason != "" {
		return reason.Expected()
	}
	return IsInvalidArgument(err)
}
