// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
)

// Error is a status-coded error. The code identifies the kind of failure and
// is stable across releases; the message is for humans.
type Error struct {
	Code    Status
	Message string
	Cause   error
}

// Error implements error.
func (s Status) Error() string { return s.String() }

// With returns a new Error with this status code and the given message parts.
func (s Status) With(v ...interface{}) *Error {
	return &Error{Code: s, Message: fmt.Sprint(v...)}
}

// WithFormat returns a new Error with this status code and a formatted
// message. If the format wraps an error with %w, the wrapped error becomes
// the cause.
func (s Status) WithFormat(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	e := &Error{Code: s, Message: err.Error()}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		e.Cause = u.Unwrap()
	}
	return e
}

// Wrap wraps an error with this status code. Wrapping nil returns nil. If the
// error already carries a known code and this status is UnknownError, the
// error is returned unchanged so the original code stays visible to Is.
func (s Status) Wrap(err error) error {
	if err == nil {
		return nil
	}
	if !s.IsKnownError() {
		var e *Error
		if errors.As(err, &e) {
			return err
		}
	}
	return &Error{Code: s, Cause: err}
}

func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Code
}

// Is reports a match against a Status or against another Error's code, either
// on this error or anywhere in its causal chain.
func (e *Error) Is(target error) bool {
	switch f := target.(type) {
	case *Error:
		if e.Code == f.Code {
			return true
		}
	case Status:
		if e.Code == f {
			return true
		}
	}
	return errors.Is(e.Cause, target)
}

func (e *Error) Format(f fmt.State, verb rune) {
	if f.Flag('+') && e.Cause != nil {
		fmt.Fprintf(f, "%s: %+v", e.Message, e.Cause)
		return
	}
	f.Write([]byte(e.Error()))
}
