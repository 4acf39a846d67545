// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidJSON is reported for request bodies that cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)

// validationError is a request body rejected by the form validator. Its
// message names the field and is shown to the caller as is.
type validationError struct {
	err error
}

func (e *validationError) Error() string {
	return e.err.Error()
}

func (e *validationError) Unwrap() error {
	return e.err
}

// Message returns the validator text with its first letter in upper case,
// e.g. "Email is not a valid email address".
func (e *validationError) Message() string {
	msg := e.err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
