package configuration

import (
	"errors"
	"fmt"
)

// Error is a configuration fault tagged with the numeric code the platform
// uses to identify the failing condition in logs and support tickets.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// NewError builds a coded configuration error.
func NewError(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Code extracts the numeric code from err. It returns 0 when err carries no
// configuration fault.
func Code(err error) int {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return 0
}
