package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrRequired         = errors.New("is required")
	ErrInvalidEmail     = errors.New("is not a valid email address")
	ErrPasswordTooShort = errors.New("must be at least 6 characters")
	ErrInvalidStatus    = errors.New("must be either active or inactive")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
)
