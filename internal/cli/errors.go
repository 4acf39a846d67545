package cli

import "errors"

var (
	ErrNotLoggedIn      = errors.New("you must be logged in")
	ErrPasswordRequired = errors.New("password is required: pass --password, --password-stdin or run in a terminal")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUnknownOutput    = errors.New("unknown output format")
)
