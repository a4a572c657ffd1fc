// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import "errors"

// Is is errors.Is.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Unwrap is errors.Unwrap.
func Unwrap(err error) error { return errors.Unwrap(err) }

// New returns an UnknownError with the given message.
func New(text string) error { return UnknownError.With(text) }

// Code returns the status code carried by the error, or zero if it has none.
func Code(err error) Status {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return 0
}
