package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-client-desk/models"
)

// Field names accepted by [FormValidator.Validate] for scoping.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldCompany  = "company"
	FieldStatus   = "status"
	FieldPatch    = "patch"
)

// MinPasswordLength is the shortest password a form accepts.
const MinPasswordLength = 6

// FormValidator validates the login, signup, profile and client forms.
// Errors name the offending field and wrap one of the package sentinels.
type FormValidator struct {
}

func NewFormValidator() Validator {
	return &FormValidator{}
}

func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case models.Registration:
		return v.validateRegistration(ctx, value, fields...)
	case *models.Registration:
		return v.validateRegistration(ctx, *value, fields...)

	case models.UserPatch:
		return v.validateUserPatch(ctx, value, fields...)
	case *models.UserPatch:
		return v.validateUserPatch(ctx, *value, fields...)

	case models.NewClient:
		return v.validateNewClient(ctx, value, fields...)
	case *models.NewClient:
		return v.validateNewClient(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *FormValidator) validateCredentials(_ context.Context, c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = email(c.Email)
		case FieldPassword:
			err = password(c.Password)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return fieldError(f, err)
		}
	}

	return nil
}

func (v *FormValidator) validateRegistration(_ context.Context, r models.Registration, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			err = required(r.Name)
		case FieldEmail:
			err = email(r.Email)
		case FieldPassword:
			err = password(r.Password)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return fieldError(f, err)
		}
	}

	return nil
}

// validateUserPatch checks only the fields the patch carries.
func (v *FormValidator) validateUserPatch(_ context.Context, p models.UserPatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatch, FieldName, FieldEmail}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldPatch:
			if p.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if p.Name != nil {
				err = required(*p.Name)
			}
		case FieldEmail:
			if p.Email != nil {
				err = email(*p.Email)
			}
		default:
			return ErrUnknownField
		}
		if err != nil {
			return fieldError(f, err)
		}
	}

	return nil
}

func (v *FormValidator) validateNewClient(_ context.Context, c models.NewClient, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldCompany, FieldStatus}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			err = required(c.Name)
		case FieldEmail:
			err = email(c.Email)
		case FieldCompany:
			err = required(c.Company)
		case FieldStatus:
			if !c.Status.Valid() {
				err = ErrInvalidStatus
			}
		default:
			return ErrUnknownField
		}
		if err != nil {
			return fieldError(f, err)
		}
	}

	return nil
}

func fieldError(field string, err error) error {
	return fmt.Errorf("%s %w", field, err)
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// email accepts a bare address only, no display name.
func email(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrRequired
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return ErrInvalidEmail
	}
	if !strings.Contains(s[strings.LastIndexByte(s, '@'):], ".") {
		return ErrInvalidEmail
	}
	return nil
}

func password(s string) error {
	if s == "" {
		return ErrRequired
	}
	if len([]rune(s)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
