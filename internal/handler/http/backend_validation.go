package http

import (
	"context"

	"github.com/MKhiriev/go-client-desk/internal/adapter"
	"github.com/MKhiriev/go-client-desk/internal/validators"
	"github.com/MKhiriev/go-client-desk/models"
)

// validationBackend checks request bodies with the form validator before
// they reach the wrapped backend. Reads and logins pass through unchanged.
type validationBackend struct {
	adapter.Backend
	validator validators.Validator
}

func newValidationBackend(inner adapter.Backend) adapter.Backend {
	return &validationBackend{
		Backend:   inner,
		validator: validators.NewFormValidator(),
	}
}

func (v *validationBackend) Register(ctx context.Context, name, email, password string) (models.AuthResult, error) {
	registration := models.Registration{Name: name, Email: email, Password: password}
	if err := v.validator.Validate(ctx, registration); err != nil {
		return models.AuthResult{}, &validationError{err: err}
	}

	return v.Backend.Register(ctx, name, email, password)
}

func (v *validationBackend) UpdateProfile(ctx context.Context, token string, patch models.UserPatch) (models.User, error) {
	if err := v.validator.Validate(ctx, patch); err != nil {
		return models.User{}, &validationError{err: err}
	}

	return v.Backend.UpdateProfile(ctx, token, patch)
}

func (v *validationBackend) AddClient(ctx context.Context, token string, c models.NewClient) (models.Client, error) {
	if err := v.validator.Validate(ctx, c); err != nil {
		return models.Client{}, &validationError{err: err}
	}

	return v.Backend.AddClient(ctx, token, c)
}
