// Package errors augments the standard errors package
// with an Error type that carries a wrapped cause without
// resorting to fmt.Errorf("%w", err).
//
// Sentinel values declared with New remain matchable with
// errors.Is after a cause has been attached with Wrap.
package errors

import (
	stderr "errors"
	"fmt"
)

var _ error = New("")

// New builds an Error from a message
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error is an error with an optional wrapped cause
type Error struct {
	msg string
	err error
}

// Error message, including the cause when one is attached
func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap the cause
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap returns a copy of this error with the given cause attached.
// The receiver is left untouched, so package-level sentinels stay pristine.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err}
}

// WrapMessage returns a copy of this error with a formatted message as its cause
func (e *Error) WrapMessage(format string, args ...interface{}) *Error {
	return &Error{msg: e.msg, err: fmt.Errorf(format, args...)}
}

// Is reports whether the target matches this error or its message
func (e *Error) Is(target error) bool {
	if o, ok := target.(*Error); ok {
		return e == o || e.msg == o.msg
	}
	return false
}

// As finds the first error in err's chain that matches target
// (a shortcut to the standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to the standard lib errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
