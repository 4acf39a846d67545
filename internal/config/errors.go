package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidBackendConfigs indicates invalid backend settings
	// (for example, unknown mode or missing API address in http mode).
	ErrInvalidBackendConfigs = errors.New("invalid backend configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, zero token duration or a short sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid development server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
