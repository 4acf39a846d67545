// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

const minTokenSignKeyLen = 16

func validateBackend(b Backend) error {
	switch strings.ToLower(b.Mode) {
	case BackendLocal:
		return nil
	case BackendHTTP:
		if b.HTTPAddress == "" || b.RequestTimeout <= 0 {
			return fmt.Errorf("%w: http mode needs an address and a request timeout", ErrInvalidBackendConfigs)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidBackendConfigs, b.Mode)
	}
}

func validateLocalApp(a App) error {
	if a.TokenIssuer == "" || a.TokenDuration <= 0 {
		return fmt.Errorf("%w: token issuer and duration are required", ErrInvalidAppConfigs)
	}
	if a.TokenSignKey != "" && len(a.TokenSignKey) < minTokenSignKeyLen {
		return fmt.Errorf("%w: token sign key must be at least %d bytes", ErrInvalidAppConfigs, minTokenSignKeyLen)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if err := validateBackend(cfg.Backend); err != nil {
		return err
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Backend.Mode == BackendLocal {
		if err := validateLocalApp(cfg.App); err != nil {
			return err
		}
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if err := validateLocalApp(cfg.App); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: listen address is required", ErrInvalidServerConfigs)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidServerConfigs)
	}

	return nil
}
