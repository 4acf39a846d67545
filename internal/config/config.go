// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Backend modes accepted by [Backend.Mode].
const (
	// BackendHTTP talks to a remote API over HTTP.
	BackendHTTP = "http"
	// BackendLocal keeps users and clients in the local storage.
	BackendLocal = "local"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging defaults, an optional
// config file, environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters for the local backend and the log location.
	App App `envPrefix:"APP_"`

	// Backend selects and configures the backend implementation.
	Backend Backend `envPrefix:"BACKEND_"`

	// Storage holds the durable key-value storage settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the development API server settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a config file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the HMAC key the local backend signs session tokens
	// with. When empty the local backend generates one and keeps it in the
	// storage.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of locally issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a locally issued token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// LogFile is where the command line client writes its logs.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// RefreshInterval is how often the interactive client reloads the client
	// list in the background.
	// Env: APP_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Backend selects the API implementation used by the session.
type Backend struct {
	// Mode is either [BackendHTTP] or [BackendLocal].
	// Env: BACKEND_MODE
	Mode string `env:"MODE"`

	// HTTPAddress is the base URL of the remote API (http mode only).
	// Env: BACKEND_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: BACKEND_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds the durable storage settings.
type Storage struct {
	// DSN is a SQLite file path, a postgres:// URL, or "memory".
	// Env: STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds settings of the development API server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Defaults returns the built-in configuration every other source is merged
// on top of.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:     "client-desk",
			TokenDuration:   24 * time.Hour,
			LogFile:         "client-desk.log",
			RefreshInterval: time.Minute,
		},
		Backend: Backend{
			Mode:           BackendLocal,
			HTTPAddress:    "http://localhost:5000",
			RequestTimeout: 15 * time.Second,
		},
		Storage: Storage{
			DSN: "client-desk.db",
		},
		Server: Server{
			HTTPAddress:     ":5000",
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all sources.
// fs is the flag set the command line flags were registered on with
// [RegisterFlags]; it may be nil.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(fs).
		withFile().
		build()
}
