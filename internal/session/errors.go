package session

import (
	"errors"
)

// ErrSessionChanged is returned by an operation whose session was closed by
// Logout while its backend call was in flight. The result of the call is
// discarded.
var ErrSessionChanged = errors.New("session changed during operation")

// Error is the failure of a session operation.
//
// Error() yields only Message, which is safe to show to the user. The
// classified cause stays reachable through errors.Is, e.g.
// errors.Is(err, adapter.ErrEmailInUse).
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
