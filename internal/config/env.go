// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces the environment variables of client-desk. Every
// variable may be given bare (BACKEND_MODE) or prefixed
// (CLIENT_DESK_BACKEND_MODE); the prefixed form wins when both are set.
const EnvPrefix = "CLIENT_DESK_"

// parseEnv populates cfg from the process environment.
func parseEnv(cfg *StructuredConfig) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

// parseEnvFrom populates cfg from environ, first from the bare variable
// names, then from the [EnvPrefix] ones on top.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	prefixed := &StructuredConfig{}
	if err := env.ParseWithOptions(prefixed, env.Options{Environment: environ, Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("error getting %s env configs: %w", EnvPrefix, err)
	}
	if err := mergo.Merge(cfg, prefixed, mergo.WithOverride); err != nil {
		return fmt.Errorf("error merging %s env configs: %w", EnvPrefix, err)
	}

	return nil
}
